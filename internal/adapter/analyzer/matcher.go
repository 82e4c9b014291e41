package analyzer

import "strings"

// FindTerms returns the terms that occur in text, compared case-insensitively
// as plain substrings. Terms keep their original casing and input order;
// a term listed twice is reported twice.
func FindTerms(text string, terms []string) []string {
	found := make([]string, 0, len(terms))
	if len(terms) == 0 {
		return found
	}

	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}
