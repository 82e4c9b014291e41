package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketTexts = []byte("texts")
	bucketMeta  = []byte("meta")
)

// TextCache stores extracted document text keyed by file path.
type TextCache struct {
	db *bbolt.DB
}

func NewTextCache(path string) (*TextCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTexts, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	cache := &TextCache{db: db}
	if err := cache.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return cache, nil
}

// CachedText is a cache entry. It is valid as long as the file still has
// the recorded size and modification time.
type CachedText struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
	Text    string `json:"text"`
}

func (c *TextCache) Get(path string) (CachedText, bool, error) {
	var entry CachedText
	var found bool
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTexts).Get([]byte(path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("decoding cache entry for %s: %w", path, err)
		}
		found = true
		return nil
	})
	return entry, found, err
}

func (c *TextCache) Put(entry CachedText) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketTexts).Put([]byte(entry.Path), data)
	})
}

func (c *TextCache) Delete(path string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTexts).Delete([]byte(path))
	})
}

// Len returns the number of cached documents.
func (c *TextCache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTexts).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

// Clear drops every cached text.
func (c *TextCache) Clear() error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketTexts); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketTexts)
		return err
	})
}

func (c *TextCache) Close() error {
	return c.db.Close()
}
