package usecase

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"cvrank/internal/domain"
	"cvrank/internal/port"
)

// ProgressFunc is called after each document with the number processed so far.
type ProgressFunc func(processed, total int, current string)

// RankUseCase scores a batch of documents and orders them by score.
type RankUseCase struct {
	lister    port.DocumentLister
	extractor port.TextExtractor
	logger    *zap.Logger
}

// NewRankUseCase creates a new rank use case.
func NewRankUseCase(
	lister port.DocumentLister,
	extractor port.TextExtractor,
	logger *zap.Logger,
) *RankUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankUseCase{
		lister:    lister,
		extractor: extractor,
		logger:    logger,
	}
}

// RankResult contains the results of a ranking run.
type RankResult struct {
	Entries  []domain.RankedEntry     `json:"entries" yaml:"entries"`
	Skipped  []domain.SkippedDocument `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Scanned  int                      `json:"scanned" yaml:"scanned"`
	Excluded int                      `json:"excluded" yaml:"excluded"`
}

// Scan lists the documents under root and ranks them.
func (u *RankUseCase) Scan(root string, terms domain.TermSet, filter domain.Filter, progress ProgressFunc) (*RankResult, error) {
	if err := validate(terms, filter); err != nil {
		return nil, err
	}

	docs, err := u.lister.List(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	u.logger.Info("found documents", zap.String("dir", root), zap.Int("count", len(docs)))

	return u.Rank(docs, terms, filter, progress)
}

// Rank extracts, scores and sorts docs. Documents whose text cannot be
// extracted are reported as skipped; they never abort the batch.
func (u *RankUseCase) Rank(docs []domain.DocumentRef, terms domain.TermSet, filter domain.Filter, progress ProgressFunc) (*RankResult, error) {
	if err := validate(terms, filter); err != nil {
		return nil, err
	}

	result := &RankResult{
		Entries: make([]domain.RankedEntry, 0, len(docs)),
	}

	for i, doc := range docs {
		u.rankOne(doc, terms, filter, result)
		result.Scanned++
		if progress != nil {
			progress(i+1, len(docs), doc.Name)
		}
	}

	// Stable so equal scores keep discovery order.
	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Score > result.Entries[j].Score
	})

	u.logger.Info("ranking complete",
		zap.Int("scanned", result.Scanned),
		zap.Int("ranked", len(result.Entries)),
		zap.Int("excluded", result.Excluded),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

func (u *RankUseCase) rankOne(doc domain.DocumentRef, terms domain.TermSet, filter domain.Filter, result *RankResult) {
	text, err := u.extractor.Extract(doc.Path)
	if err != nil {
		u.logger.Warn("skipping document", zap.String("name", doc.Name), zap.Error(err))
		result.Skipped = append(result.Skipped, domain.SkippedDocument{
			Name:   doc.Name,
			Path:   doc.Path,
			Reason: err.Error(),
		})
		return
	}
	if text == "" {
		u.logger.Debug("no text extracted", zap.String("name", doc.Name))
	}

	matches, score, included := ScoreDocument(text, terms, filter)
	if !included {
		u.logger.Debug("document excluded by policy",
			zap.String("name", doc.Name),
			zap.String("policy", string(filter.Policy)),
			zap.Int("score", score),
		)
		result.Excluded++
		return
	}

	result.Entries = append(result.Entries, domain.RankedEntry{
		Name:    doc.Name,
		Path:    doc.Path,
		Matches: matches,
		Score:   score,
	})
}

func validate(terms domain.TermSet, filter domain.Filter) error {
	if err := terms.Validate(); err != nil {
		return err
	}
	return filter.Validate(terms)
}
