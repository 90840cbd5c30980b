package port

import (
	"context"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// VocabularyProvider fetches the learner's current vocabulary from an
// external source.
type VocabularyProvider interface {
	Name() string
	Fetch(ctx context.Context) (domain.VocabularySet, error)
}

// EntryProvider is implemented by providers that can report per-word detail
// (review interval, deck) for snapshot storage.
type EntryProvider interface {
	FetchEntries(ctx context.Context) ([]domain.VocabularyEntry, error)
}
