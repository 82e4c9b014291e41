package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is the current cache schema version.
// Increment this when the entry format or the extraction output changes.
const CurrentSchemaVersion = 1

var keySchemaVersion = []byte("schema_version")

// SchemaVersion returns the version recorded in the cache, 0 when unset.
func (c *TextCache) SchemaVersion() (int, error) {
	var version int
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keySchemaVersion)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &version); err != nil {
			version = 0
		}
		return nil
	})
	return version, err
}

func (c *TextCache) setSchemaVersion(version int) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(version)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySchemaVersion, data)
	})
}

// ensureSchema clears entries written under a different schema version.
func (c *TextCache) ensureSchema() error {
	version, err := c.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if version == CurrentSchemaVersion {
		return nil
	}

	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache for schema v%d: %w", CurrentSchemaVersion, err)
	}
	return c.setSchemaVersion(CurrentSchemaVersion)
}
