package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names a group of search terms, e.g. "Skills" or "City".
type Category string

// CategoryTerms is a single category of a TermSet.
type CategoryTerms struct {
	Category Category
	Terms    []string
}

// TermSet maps categories to the literal terms searched for. It is ordered:
// categories and terms are kept in the order they were configured.
type TermSet []CategoryTerms

// Categories returns the category labels in configured order.
func (ts TermSet) Categories() []Category {
	cats := make([]Category, 0, len(ts))
	for _, ct := range ts {
		cats = append(cats, ct.Category)
	}
	return cats
}

// Terms returns the terms configured for a category.
func (ts TermSet) Terms(cat Category) ([]string, bool) {
	for _, ct := range ts {
		if ct.Category == cat {
			return ct.Terms, true
		}
	}
	return nil, false
}

// With returns a copy of the term set where cat holds terms. An existing
// category keeps its position, a new one is appended.
func (ts TermSet) With(cat Category, terms []string) TermSet {
	out := make(TermSet, 0, len(ts)+1)
	replaced := false
	for _, ct := range ts {
		if ct.Category == cat {
			ct = CategoryTerms{Category: cat, Terms: append([]string(nil), terms...)}
			replaced = true
		}
		out = append(out, ct)
	}
	if !replaced {
		out = append(out, CategoryTerms{Category: cat, Terms: append([]string(nil), terms...)})
	}
	return out
}

// Validate checks that the term set is usable for matching.
func (ts TermSet) Validate() error {
	if len(ts) == 0 {
		return NewValidationError("terms", "term set is empty")
	}
	seen := make(map[Category]struct{}, len(ts))
	for _, ct := range ts {
		name := strings.TrimSpace(string(ct.Category))
		if name == "" {
			return NewValidationError("terms", "category name is empty")
		}
		if _, dup := seen[ct.Category]; dup {
			return NewValidationError("terms."+name, "duplicate category")
		}
		seen[ct.Category] = struct{}{}
		for i, term := range ct.Terms {
			if strings.TrimSpace(term) == "" {
				return NewValidationError(fmt.Sprintf("terms.%s[%d]", name, i), "term is empty")
			}
		}
	}
	return nil
}

// UnmarshalYAML decodes a YAML mapping of category to term list, keeping
// the document order.
func (ts *TermSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*ts = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return NewValidationError("terms", fmt.Sprintf("line %d: expected a mapping of category to terms", value.Line))
	}

	out := make(TermSet, 0, len(value.Content)/2)
	seen := make(map[Category]struct{})
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return NewValidationError("terms", fmt.Sprintf("line %d: category must be a string", key.Line))
		}
		cat := Category(key.Value)
		if _, dup := seen[cat]; dup {
			return NewValidationError("terms."+key.Value, "duplicate category")
		}
		seen[cat] = struct{}{}

		terms, err := decodeTerms(key.Value, val)
		if err != nil {
			return err
		}
		out = append(out, CategoryTerms{Category: cat, Terms: terms})
	}

	*ts = out
	return nil
}

func decodeTerms(cat string, node *yaml.Node) ([]string, error) {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return []string{}, nil
	case node.Kind != yaml.SequenceNode:
		return nil, NewValidationError("terms."+cat, fmt.Sprintf("line %d: expected a list of terms", node.Line))
	}

	terms := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, NewValidationError(fmt.Sprintf("terms.%s[%d]", cat, i), fmt.Sprintf("line %d: term must be a string", item.Line))
		}
		terms = append(terms, item.Value)
	}
	return terms, nil
}

// MarshalYAML encodes the term set as an ordered mapping.
func (ts TermSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, ct := range ts {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, term := range ct.Terms {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: term})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(ct.Category)},
			seq,
		)
	}
	return node, nil
}

// CategoryMatch holds the terms of one category found in a document.
type CategoryMatch struct {
	Category Category `json:"category" yaml:"category"`
	Matches  []string `json:"matches" yaml:"matches"`
}

// MatchResult lists, per category of the term set, the terms found in a
// document. Every category is present, with an empty list when nothing matched.
type MatchResult []CategoryMatch

// Matches returns the terms found for a category.
func (mr MatchResult) Matches(cat Category) []string {
	for _, cm := range mr {
		if cm.Category == cat {
			return cm.Matches
		}
	}
	return nil
}

// Score is the sum of matched terms across all categories.
func (mr MatchResult) Score() int {
	score := 0
	for _, cm := range mr {
		score += len(cm.Matches)
	}
	return score
}

// DocumentRef identifies a candidate document found by the scanner.
type DocumentRef struct {
	Name string
	Path string
}

// RankedEntry is the scoring outcome for one document.
type RankedEntry struct {
	Name    string      `json:"name" yaml:"name"`
	Path    string      `json:"path" yaml:"path"`
	Matches MatchResult `json:"matches" yaml:"matches"`
	Score   int         `json:"score" yaml:"score"`
}

// SkippedDocument is a document left out of the ranking because its text
// could not be extracted.
type SkippedDocument struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}
