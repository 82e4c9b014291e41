package store

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cvrank/internal/domain"
	"cvrank/internal/port"
)

// CachedExtractor serves extracted text from a TextCache and falls back to
// the wrapped extractor when the file changed or was never seen.
type CachedExtractor struct {
	cache  *TextCache
	next   port.TextExtractor
	logger *zap.Logger

	hits   int
	misses int
}

func NewCachedExtractor(cache *TextCache, next port.TextExtractor, logger *zap.Logger) *CachedExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedExtractor{
		cache:  cache,
		next:   next,
		logger: logger,
	}
}

func (e *CachedExtractor) Extract(path string) (string, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", domain.NewExtractionError(path, err)
	}

	entry, found, err := e.cache.Get(key)
	if err != nil {
		e.logger.Warn("reading text cache", zap.String("path", key), zap.Error(err))
	}
	if found && entry.Size == info.Size() && entry.ModTime == info.ModTime().UnixNano() {
		e.hits++
		return entry.Text, nil
	}

	e.misses++
	text, err := e.next.Extract(path)
	if err != nil {
		return "", err
	}

	if err := e.cache.Put(CachedText{
		Path:    key,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		Text:    text,
	}); err != nil {
		e.logger.Warn("writing text cache", zap.String("path", key), zap.Error(err))
	}

	return text, nil
}

// Stats returns the cache hits and misses seen so far.
func (e *CachedExtractor) Stats() (hits, misses int) {
	return e.hits, e.misses
}
