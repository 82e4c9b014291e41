package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"cvrank/internal/domain"
)

// Lister lists the documents of a single directory, without recursing.
type Lister struct {
	extensions []string
	excludes   []string
}

func NewLister(extensions, excludes []string) *Lister {
	if len(extensions) == 0 {
		extensions = []string{".pdf"}
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	pats := make([]string, 0, len(excludes))
	for _, p := range excludes {
		pats = append(pats, strings.ToLower(p))
	}
	return &Lister{
		extensions: exts,
		excludes:   pats,
	}
}

// List returns the matching regular files directly under root, in the
// order the directory listing yields them.
func (l *Lister) List(root string) ([]domain.DocumentRef, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.NewNotFoundError(root, err)
		}
		return nil, domain.NewInaccessibleError(root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewNotADirectoryError(root)
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, domain.NewInaccessibleError(root, err)
	}

	docs := make([]domain.DocumentRef, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !l.shouldInclude(name) || l.shouldExclude(name) {
			continue
		}
		docs = append(docs, domain.DocumentRef{
			Name: name,
			Path: filepath.Join(root, name),
		})
	}

	return docs, nil
}

func (l *Lister) shouldInclude(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range l.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (l *Lister) shouldExclude(name string) bool {
	name = strings.ToLower(name)
	for _, pattern := range l.excludes {
		matched, err := doublestar.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}
