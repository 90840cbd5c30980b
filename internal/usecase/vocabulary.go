package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
)

// VocabularyUseCase syncs the learner's vocabulary from a provider into
// the local snapshot store and loads it back for analysis.
type VocabularyUseCase struct {
	store  port.VocabularyStore
	logger *slog.Logger
}

func NewVocabularyUseCase(store port.VocabularyStore, logger *slog.Logger) *VocabularyUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &VocabularyUseCase{store: store, logger: logger}
}

type SyncResult struct {
	Source    string
	Mature    int
	Learning  int
	FetchedAt time.Time
}

// Sync fetches a fresh vocabulary from the provider and replaces the
// stored snapshot wholesale. Providers that implement port.EntryProvider
// contribute per-word detail (interval, deck); others store bare words.
func (u *VocabularyUseCase) Sync(ctx context.Context, provider port.VocabularyProvider, sourceHash string) (*SyncResult, error) {
	now := time.Now()
	var entries []domain.VocabularyEntry

	if ep, ok := provider.(port.EntryProvider); ok {
		fetched, err := ep.FetchEntries(ctx)
		if err != nil {
			return nil, fmt.Errorf("vocabulary fetch failed: %w", err)
		}
		entries = fetched
	} else {
		vocab, err := provider.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("vocabulary fetch failed: %w", err)
		}
		mature, learning := vocab.Words()
		for _, w := range mature {
			entries = append(entries, domain.VocabularyEntry{Word: w, Class: domain.ClassMature, UpdatedAt: now})
		}
		for _, w := range learning {
			entries = append(entries, domain.VocabularyEntry{Word: w, Class: domain.ClassLearning, UpdatedAt: now})
		}
	}

	result := &SyncResult{Source: provider.Name(), FetchedAt: now}
	for _, e := range entries {
		switch e.Class {
		case domain.ClassMature:
			result.Mature++
		case domain.ClassLearning:
			result.Learning++
		}
	}
	meta := domain.SnapshotMeta{
		Source:     provider.Name(),
		SourceHash: sourceHash,
		FetchedAt:  now,
		Mature:     result.Mature,
		Learning:   result.Learning,
	}
	if err := u.store.ReplaceSnapshot(entries, meta); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	u.logger.Info("vocabulary snapshot replaced",
		"source", provider.Name(), "mature", result.Mature, "learning", result.Learning)
	return result, nil
}

// Load returns the working vocabulary: the provider when reachable, the
// stored snapshot otherwise. The returned source names which one served.
func (u *VocabularyUseCase) Load(ctx context.Context, provider port.VocabularyProvider) (domain.VocabularySet, string, error) {
	if provider != nil {
		vocab, err := provider.Fetch(ctx)
		if err == nil {
			return vocab, provider.Name(), nil
		}
		u.logger.Warn("provider unavailable, falling back to stored snapshot",
			"provider", provider.Name(), "error", err)
	}
	vocab, meta, err := u.store.LoadSnapshot()
	if err != nil {
		return domain.VocabularySet{}, "", err
	}
	return vocab, fmt.Sprintf("snapshot (%s)", meta.Source), nil
}
