package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTermSetUnmarshalKeepsOrder(t *testing.T) {
	content := `
Skills: [python, Go]
Languages:
  - English
City:
Extra: []
`
	var ts TermSet
	if err := yaml.Unmarshal([]byte(content), &ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Category{"Skills", "Languages", "City", "Extra"}
	if got := ts.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected categories %v, got %v", want, got)
	}

	skills, _ := ts.Terms("Skills")
	if !reflect.DeepEqual(skills, []string{"python", "Go"}) {
		t.Errorf("unexpected skills: %v", skills)
	}

	city, ok := ts.Terms("City")
	if !ok || len(city) != 0 {
		t.Errorf("expected empty City category, got %v (present=%v)", city, ok)
	}
}

func TestTermSetUnmarshalRejectsMalformedTerms(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"nested list term", "Skills: [[python]]"},
		{"map term", "Skills:\n  - lang: go"},
		{"null term", "Skills: [~]"},
		{"int term", "Skills: [42]"},
		{"bool term", "Skills: [true]"},
		{"float term", "Skills: [3.5]"},
		{"scalar instead of list", "Skills: python"},
		{"not a mapping", "- python"},
		{"duplicate category", "Skills: [a]\nSkills: [b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TermSet
			err := yaml.Unmarshal([]byte(tt.content), &ts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestTermSetUnmarshalQuotedScalars(t *testing.T) {
	var ts TermSet
	if err := yaml.Unmarshal([]byte(`Skills: ["42", "true", C++]`), &ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	terms, _ := ts.Terms("Skills")
	if !reflect.DeepEqual(terms, []string{"42", "true", "C++"}) {
		t.Errorf("unexpected terms %v", terms)
	}
}

func TestTermSetMarshalRoundTripOrder(t *testing.T) {
	ts := TermSet{
		{Category: "Zeta", Terms: []string{"z"}},
		{Category: "Alpha", Terms: []string{"a", "b"}},
	}

	data, err := yaml.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(string(data), "Zeta") > strings.Index(string(data), "Alpha") {
		t.Fatalf("expected Zeta before Alpha, got:\n%s", data)
	}
}

func TestTermSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		ts      TermSet
		wantErr bool
	}{
		{"valid", TermSet{{Category: "Skills", Terms: []string{"go"}}}, false},
		{"empty category list allowed", TermSet{{Category: "Skills", Terms: nil}}, false},
		{"empty set", TermSet{}, true},
		{"blank category", TermSet{{Category: " ", Terms: []string{"go"}}}, true},
		{"blank term", TermSet{{Category: "Skills", Terms: []string{"go", "  "}}}, true},
		{"duplicate category", TermSet{{Category: "A"}, {Category: "A"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestTermSetWith(t *testing.T) {
	ts := TermSet{
		{Category: "Skills", Terms: []string{"go"}},
		{Category: "City", Terms: []string{"Cluj"}},
	}

	replaced := ts.With("Skills", []string{"python"})
	if got, _ := replaced.Terms("Skills"); !reflect.DeepEqual(got, []string{"python"}) {
		t.Errorf("expected replaced skills, got %v", got)
	}
	if replaced.Categories()[0] != "Skills" {
		t.Errorf("expected Skills to keep its position")
	}
	if got, _ := ts.Terms("Skills"); !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("original term set was modified: %v", got)
	}

	added := ts.With("Languages", []string{"English"})
	if len(added) != 3 || added[2].Category != "Languages" {
		t.Errorf("expected Languages appended, got %v", added.Categories())
	}
}

func TestMatchResultScore(t *testing.T) {
	mr := MatchResult{
		{Category: "Skills", Matches: []string{"go", "python"}},
		{Category: "City", Matches: []string{}},
		{Category: "Languages", Matches: []string{"English"}},
	}
	if mr.Score() != 3 {
		t.Errorf("expected score 3, got %d", mr.Score())
	}
	if got := mr.Matches("Languages"); !reflect.DeepEqual(got, []string{"English"}) {
		t.Errorf("unexpected matches: %v", got)
	}
	if got := mr.Matches("Missing"); got != nil {
		t.Errorf("expected nil for unknown category, got %v", got)
	}
}
