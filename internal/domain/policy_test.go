package domain

import (
	"errors"
	"os"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicyInclusive, false},
		{"inclusive", PolicyInclusive, false},
		{"ANY-CATEGORY", PolicyAnyCategory, false},
		{" all-categories ", PolicyAllCategories, false},
		{"required-categories", PolicyRequiredCategories, false},
		{"skills-first", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterAdmits(t *testing.T) {
	none := MatchResult{
		{Category: "Skills", Matches: []string{}},
		{Category: "City", Matches: []string{}},
	}
	partial := MatchResult{
		{Category: "Skills", Matches: []string{"go"}},
		{Category: "City", Matches: []string{}},
	}
	full := MatchResult{
		{Category: "Skills", Matches: []string{"go"}},
		{Category: "City", Matches: []string{"Cluj"}},
	}
	cityOnly := MatchResult{
		{Category: "Skills", Matches: []string{}},
		{Category: "City", Matches: []string{"Cluj"}},
	}

	tests := []struct {
		name   string
		filter Filter
		mr     MatchResult
		want   bool
	}{
		{"inclusive keeps empty", Filter{Policy: PolicyInclusive}, none, true},
		{"zero value is inclusive", Filter{}, none, true},
		{"any drops empty", Filter{Policy: PolicyAnyCategory}, none, false},
		{"any keeps partial", Filter{Policy: PolicyAnyCategory}, partial, true},
		{"all drops partial", Filter{Policy: PolicyAllCategories}, partial, false},
		{"all keeps full", Filter{Policy: PolicyAllCategories}, full, true},
		{"required keeps partial with skills", Filter{Policy: PolicyRequiredCategories, Required: []Category{"Skills"}}, partial, true},
		{"required drops missing skills", Filter{Policy: PolicyRequiredCategories, Required: []Category{"Skills"}}, cityOnly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Admits(tt.mr); got != tt.want {
				t.Errorf("Admits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterValidate(t *testing.T) {
	ts := TermSet{{Category: "Skills", Terms: []string{"go"}}}

	if err := (Filter{Policy: PolicyAllCategories}).Validate(ts); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Filter{}).Validate(ts); err != nil {
		t.Errorf("unexpected error for zero filter: %v", err)
	}
	for _, p := range []Policy{"Any-Category", " all-categories", "INCLUSIVE"} {
		if err := (Filter{Policy: p}).Validate(ts); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for non-canonical policy %q, got %v", p, err)
		}
	}
	if err := (Filter{Policy: "bogus"}).Validate(ts); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown policy, got %v", err)
	}
	if err := (Filter{Policy: PolicyRequiredCategories}).Validate(ts); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty required list, got %v", err)
	}
	if err := (Filter{Policy: PolicyRequiredCategories, Required: []Category{"City"}}).Validate(ts); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown required category, got %v", err)
	}
}

func TestPathErrorMatchesSentinels(t *testing.T) {
	notFound := NewNotFoundError("/missing", nil)
	if !errors.Is(notFound, ErrInvalidPath) || !errors.Is(notFound, ErrNotFound) {
		t.Error("expected not found error to match ErrInvalidPath and ErrNotFound")
	}
	if errors.Is(notFound, ErrNotADirectory) {
		t.Error("not found error should not match ErrNotADirectory")
	}

	denied := NewInaccessibleError("/root/cvs", os.ErrPermission)
	if !errors.Is(denied, ErrInvalidPath) || !errors.Is(denied, os.ErrPermission) {
		t.Error("expected inaccessible error to match ErrInvalidPath and its cause")
	}

	notDir := NewNotADirectoryError("/file.pdf")
	if !errors.Is(notDir, ErrInvalidPath) || !errors.Is(notDir, ErrNotADirectory) {
		t.Error("expected not a directory error to match ErrInvalidPath and ErrNotADirectory")
	}

	cause := errors.New("boom")
	extraction := NewExtractionError("/cv.pdf", cause)
	if !errors.Is(extraction, ErrExtractionFailed) || !errors.Is(extraction, cause) {
		t.Error("expected extraction error to match ErrExtractionFailed and its cause")
	}
}
