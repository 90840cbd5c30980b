package port

import "github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"

// VocabularyStore persists vocabulary snapshots and analysis history.
type VocabularyStore interface {
	// ReplaceSnapshot swaps the stored vocabulary wholesale.
	ReplaceSnapshot(entries []domain.VocabularyEntry, meta domain.SnapshotMeta) error

	// LoadSnapshot rebuilds the vocabulary from storage. Returns
	// domain.ErrNoVocabulary when nothing has been synced yet.
	LoadSnapshot() (domain.VocabularySet, domain.SnapshotMeta, error)

	// GetEntry looks up one stored word. Returns domain.ErrNotFound
	// when the word is not in the snapshot.
	GetEntry(word string) (domain.VocabularyEntry, error)

	PutReport(rec domain.AnalysisRecord) error
	ListReports() ([]domain.AnalysisRecord, error)

	Close() error
}
