package domain

import (
	"fmt"
	"strings"
)

// Policy decides whether a scored document is kept in the ranking.
type Policy string

const (
	// PolicyInclusive keeps every document.
	PolicyInclusive Policy = "inclusive"
	// PolicyAnyCategory keeps documents with at least one matching category.
	PolicyAnyCategory Policy = "any-category"
	// PolicyAllCategories keeps documents where every category matched.
	PolicyAllCategories Policy = "all-categories"
	// PolicyRequiredCategories keeps documents where every category listed in
	// Filter.Required matched.
	PolicyRequiredCategories Policy = "required-categories"
)

// Policies lists the supported policies.
func Policies() []Policy {
	return []Policy{PolicyInclusive, PolicyAnyCategory, PolicyAllCategories, PolicyRequiredCategories}
}

// ParsePolicy resolves a policy name. An empty name means PolicyInclusive.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PolicyInclusive, nil
	}
	for _, p := range Policies() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", NewValidationError("policy", fmt.Sprintf("unknown policy %q", name))
}

// Filter is the exclusion policy applied to scored documents.
type Filter struct {
	Policy   Policy
	Required []Category
}

// Validate checks the filter against the term set it will be applied to.
func (f Filter) Validate(ts TermSet) error {
	p, err := ParsePolicy(string(f.Policy))
	if err != nil {
		return err
	}
	if f.Policy != "" && p != f.Policy {
		return NewValidationError("policy", fmt.Sprintf("policy %q must be written as %q", f.Policy, p))
	}
	if f.Policy != PolicyRequiredCategories {
		return nil
	}
	if len(f.Required) == 0 {
		return NewValidationError("required", "required-categories policy needs at least one category")
	}
	for _, cat := range f.Required {
		if _, ok := ts.Terms(cat); !ok {
			return NewValidationError("required", fmt.Sprintf("category %q is not in the term set", cat))
		}
	}
	return nil
}

// Admits reports whether a document with the given matches is kept.
func (f Filter) Admits(mr MatchResult) bool {
	switch f.Policy {
	case PolicyAnyCategory:
		for _, cm := range mr {
			if len(cm.Matches) > 0 {
				return true
			}
		}
		return false
	case PolicyAllCategories:
		for _, cm := range mr {
			if len(cm.Matches) == 0 {
				return false
			}
		}
		return true
	case PolicyRequiredCategories:
		for _, cat := range f.Required {
			if len(mr.Matches(cat)) == 0 {
				return false
			}
		}
		return true
	default:
		return true
	}
}
