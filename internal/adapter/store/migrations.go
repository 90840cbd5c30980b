package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/config"
)

// CurrentSchemaVersion is the current storage layout version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keySourceHash    = []byte("source_hash")
)

// SchemaInfo stores the schema version and the fingerprint of the
// vocabulary source configuration the snapshot was built from.
type SchemaInfo struct {
	Version    int    `json:"version"`
	SourceHash string `json:"source_hash"`
}

// GetSchemaInfo retrieves the current schema info from the database.
// A fresh database reports version 0.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		if versionData := b.Get(keySchemaVersion); versionData != nil {
			if err := json.Unmarshal(versionData, &info.Version); err != nil {
				info.Version = 1
			}
		}
		if hashData := b.Get(keySourceHash); hashData != nil {
			info.SourceHash = string(hashData)
		}
		return nil
	})
	return &info, err
}

// SetSchemaInfo stores the schema info in the database.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		versionData, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, versionData); err != nil {
			return err
		}
		return b.Put(keySourceHash, []byte(info.SourceHash))
	})
}

// ComputeSourceHash fingerprints the vocabulary source configuration.
// A changed hash means the stored snapshot no longer reflects the
// configured decks and should be resynced.
func ComputeSourceHash(cfg *config.Config) string {
	relevant := struct {
		URL            string              `json:"url"`
		Decks          []config.DeckConfig `json:"decks"`
		MatureInterval int                 `json:"mature_interval"`
	}{
		URL:            cfg.Anki.URL,
		Decks:          cfg.Anki.Decks,
		MatureInterval: cfg.Anki.MatureIntervalDays,
	}
	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// SnapshotCheck reports whether the stored snapshot still matches the
// configured vocabulary source.
type SnapshotCheck struct {
	NeedsResync bool
	OldVersion  int
	Reason      string
}

// CheckSnapshot compares the stored schema info against the current
// configuration.
func (s *BoltStore) CheckSnapshot(cfg *config.Config) (*SnapshotCheck, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	check := &SnapshotCheck{OldVersion: info.Version}
	switch {
	case info.Version == 0:
		check.NeedsResync = true
		check.Reason = "no snapshot stored yet"
	case info.Version != CurrentSchemaVersion:
		check.NeedsResync = true
		check.Reason = fmt.Sprintf("storage layout changed (v%d -> v%d)", info.Version, CurrentSchemaVersion)
	case info.SourceHash != "" && info.SourceHash != ComputeSourceHash(cfg):
		check.NeedsResync = true
		check.Reason = "vocabulary source configuration changed"
	}
	return check, nil
}

// MarkSynced stamps the current schema version and source fingerprint
// after a successful sync.
func (s *BoltStore) MarkSynced(cfg *config.Config) error {
	return s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		SourceHash: ComputeSourceHash(cfg),
	})
}

// Clear removes the stored snapshot and reports, keeping schema info.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketWords, bucketReports} {
			b := tx.Bucket(name)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		meta := tx.Bucket(bucketMeta)
		return meta.Delete(keySnapshot)
	})
}
