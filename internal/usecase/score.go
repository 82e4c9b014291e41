package usecase

import (
	"cvrank/internal/adapter/analyzer"
	"cvrank/internal/domain"
)

// ScoreDocument matches every category of terms against text. The score is
// the total number of matched terms. included is false when filter rejects
// the document.
func ScoreDocument(text string, terms domain.TermSet, filter domain.Filter) (matches domain.MatchResult, score int, included bool) {
	matches = make(domain.MatchResult, 0, len(terms))
	for _, ct := range terms {
		found := analyzer.FindTerms(text, ct.Terms)
		matches = append(matches, domain.CategoryMatch{
			Category: ct.Category,
			Matches:  found,
		})
		score += len(found)
	}

	return matches, score, filter.Admits(matches)
}
