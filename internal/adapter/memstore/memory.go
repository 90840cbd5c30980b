// Package memstore keeps a vocabulary snapshot in memory. It mirrors the
// bbolt store for tests and environments without a filesystem.
package memstore

import (
	"fmt"
	"sync"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// MemoryStore implements port.VocabularyStore without persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.VocabularyEntry
	meta    domain.SnapshotMeta
	synced  bool
	reports map[string]domain.AnalysisRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.VocabularyEntry),
		reports: make(map[string]domain.AnalysisRecord),
	}
}

func (s *MemoryStore) ReplaceSnapshot(entries []domain.VocabularyEntry, meta domain.SnapshotMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.VocabularyEntry, len(entries))
	for _, e := range entries {
		s.entries[e.Word] = e
	}
	s.meta = meta
	s.synced = true
	return nil
}

func (s *MemoryStore) LoadSnapshot() (domain.VocabularySet, domain.SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.synced {
		return domain.VocabularySet{}, domain.SnapshotMeta{}, domain.ErrNoVocabulary
	}
	var mature, learning []string
	for word, e := range s.entries {
		switch e.Class {
		case domain.ClassMature:
			mature = append(mature, word)
		case domain.ClassLearning:
			learning = append(learning, word)
		}
	}
	return domain.NewVocabularySet(mature, learning), s.meta, nil
}

func (s *MemoryStore) GetEntry(word string) (domain.VocabularyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[word]
	if !ok {
		return domain.VocabularyEntry{}, fmt.Errorf("%w: %s", domain.ErrNotFound, word)
	}
	return entry, nil
}

func (s *MemoryStore) PutReport(rec domain.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[rec.ID] = rec
	return nil
}

func (s *MemoryStore) ListReports() ([]domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]domain.AnalysisRecord, 0, len(s.reports))
	for _, rec := range s.reports {
		reports = append(reports, rec)
	}
	return reports, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
