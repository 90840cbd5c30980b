// Package store persists vocabulary snapshots and analysis history in a
// local bbolt database.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

var (
	bucketWords   = []byte("words")
	bucketMeta    = []byte("meta")
	bucketReports = []byte("reports")
	keySnapshot   = []byte("snapshot")
)

// BoltStore implements port.VocabularyStore on bbolt.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketWords, bucketMeta, bucketReports}
		for _, b := range buckets {
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

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type wordMeta struct {
	Class     string `json:"class"`
	Interval  int    `json:"interval,omitempty"`
	Deck      string `json:"deck,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
}

// ReplaceSnapshot swaps the stored vocabulary wholesale: the words bucket
// is dropped and rewritten in a single transaction, so readers never see a
// half-synced state.
func (s *BoltStore) ReplaceSnapshot(entries []domain.VocabularyEntry, meta domain.SnapshotMeta) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketWords); err != nil {
			return fmt.Errorf("failed to clear words bucket: %w", err)
		}
		words, err := tx.CreateBucket(bucketWords)
		if err != nil {
			return fmt.Errorf("failed to recreate words bucket: %w", err)
		}
		for _, e := range entries {
			data, err := json.Marshal(wordMeta{
				Class:     e.Class.String(),
				Interval:  e.Interval,
				Deck:      e.Deck,
				UpdatedAt: e.UpdatedAt.Unix(),
			})
			if err != nil {
				return err
			}
			if err := words.Put([]byte(e.Word), data); err != nil {
				return err
			}
		}
		metaData, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySnapshot, metaData)
	})
}

// LoadSnapshot rebuilds the vocabulary from the words bucket. Returns
// domain.ErrNoVocabulary when no snapshot has been stored yet.
func (s *BoltStore) LoadSnapshot() (domain.VocabularySet, domain.SnapshotMeta, error) {
	var meta domain.SnapshotMeta
	var mature, learning []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		metaData := tx.Bucket(bucketMeta).Get(keySnapshot)
		if metaData == nil {
			return domain.ErrNoVocabulary
		}
		if err := json.Unmarshal(metaData, &meta); err != nil {
			return fmt.Errorf("failed to parse snapshot meta: %w", err)
		}
		return tx.Bucket(bucketWords).ForEach(func(k, v []byte) error {
			var m wordMeta
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to parse word %s: %w", k, err)
			}
			switch domain.WordClass(m.Class) {
			case domain.ClassMature:
				mature = append(mature, string(k))
			case domain.ClassLearning:
				learning = append(learning, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return domain.VocabularySet{}, domain.SnapshotMeta{}, err
	}
	return domain.NewVocabularySet(mature, learning), meta, nil
}

// GetEntry looks up one stored word.
func (s *BoltStore) GetEntry(word string) (domain.VocabularyEntry, error) {
	var entry domain.VocabularyEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketWords).Get([]byte(word))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, word)
		}
		var m wordMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		entry = domain.VocabularyEntry{
			Word:      word,
			Class:     domain.WordClass(m.Class),
			Interval:  m.Interval,
			Deck:      m.Deck,
			UpdatedAt: time.Unix(m.UpdatedAt, 0),
		}
		return nil
	})
	return entry, err
}

// PutReport stores one analysis record, overwriting any previous run for
// the same source.
func (s *BoltStore) PutReport(rec domain.AnalysisRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketReports).Put([]byte(rec.ID), data)
	})
}

// GetReport loads one analysis record by ID.
func (s *BoltStore) GetReport(id string) (domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketReports).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: report %s", domain.ErrNotFound, id)
		}
		return json.Unmarshal(data, &rec)
	})
	return rec, err
}

// ListReports returns all stored analysis records in unspecified order.
func (s *BoltStore) ListReports() ([]domain.AnalysisRecord, error) {
	var reports []domain.AnalysisRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketReports).ForEach(func(k, v []byte) error {
			var rec domain.AnalysisRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to parse report %s: %w", k, err)
			}
			reports = append(reports, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
