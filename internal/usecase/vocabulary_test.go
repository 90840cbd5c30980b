package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/memstore"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// entryProvider also reports per-word detail.
type entryProvider struct {
	fakeProvider
	entries []domain.VocabularyEntry
}

func (p *entryProvider) FetchEntries(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.entries, nil
}

func TestSyncStoresSnapshot(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())

	provider := &fakeProvider{vocab: domain.NewVocabularySet(
		[]string{"שלום", "עולם"},
		[]string{"ספר"},
	)}
	result, err := uc.Sync(context.Background(), provider, "abc123")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Mature != 2 || result.Learning != 1 {
		t.Errorf("result = %+v, want 2 mature / 1 learning", result)
	}

	vocab, meta, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !vocab.IsMature("שלום") || !vocab.IsLearning("ספר") {
		t.Error("stored snapshot lost words")
	}
	if meta.Source != "fake" || meta.SourceHash != "abc123" {
		t.Errorf("meta = %+v", meta)
	}
}

func TestSyncPrefersEntryDetail(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())

	provider := &entryProvider{entries: []domain.VocabularyEntry{
		{Word: "שלום", Class: domain.ClassMature, Interval: 90, Deck: "Hebrew"},
		{Word: "ספר", Class: domain.ClassLearning, Interval: 3, Deck: "Hebrew"},
	}}
	result, err := uc.Sync(context.Background(), provider, "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Mature != 1 || result.Learning != 1 {
		t.Errorf("result = %+v", result)
	}

	entry, err := store.GetEntry("שלום")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.Interval != 90 || entry.Deck != "Hebrew" {
		t.Errorf("entry detail lost: %+v", entry)
	}
}

func TestSyncReplacesWholesale(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())
	ctx := context.Background()

	first := &fakeProvider{vocab: domain.NewVocabularySet([]string{"ישן"}, nil)}
	if _, err := uc.Sync(ctx, first, ""); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	second := &fakeProvider{vocab: domain.NewVocabularySet([]string{"חדש"}, nil)}
	if _, err := uc.Sync(ctx, second, ""); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	vocab, _, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if vocab.IsMature("ישן") {
		t.Error("old snapshot word survived the replace")
	}
	if !vocab.IsMature("חדש") {
		t.Error("new snapshot word missing")
	}
}

func TestSyncFetchFailure(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())

	provider := &fakeProvider{err: errors.New("connection refused")}
	if _, err := uc.Sync(context.Background(), provider, ""); err == nil {
		t.Fatal("Sync should surface fetch errors")
	}
	// The store must stay untouched.
	if _, _, err := store.LoadSnapshot(); !errors.Is(err, domain.ErrNoVocabulary) {
		t.Errorf("LoadSnapshot error = %v, want ErrNoVocabulary", err)
	}
}

func TestLoadPrefersProvider(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())
	ctx := context.Background()

	stale := &fakeProvider{vocab: domain.NewVocabularySet([]string{"ישן"}, nil)}
	if _, err := uc.Sync(ctx, stale, ""); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	fresh := &fakeProvider{vocab: domain.NewVocabularySet([]string{"חדש"}, nil)}
	vocab, source, err := uc.Load(ctx, fresh)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source != "fake" {
		t.Errorf("source = %q, want fake", source)
	}
	if !vocab.IsMature("חדש") || vocab.IsMature("ישן") {
		t.Error("Load should serve the provider's vocabulary")
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())
	ctx := context.Background()

	good := &fakeProvider{vocab: domain.NewVocabularySet([]string{"שלום"}, nil)}
	if _, err := uc.Sync(ctx, good, ""); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	down := &fakeProvider{err: errors.New("connection refused")}
	vocab, source, err := uc.Load(ctx, down)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source != "snapshot (fake)" {
		t.Errorf("source = %q, want snapshot (fake)", source)
	}
	if !vocab.IsMature("שלום") {
		t.Error("snapshot vocabulary missing after fallback")
	}
}

func TestLoadNothingAvailable(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewVocabularyUseCase(store, discardLogger())

	down := &fakeProvider{err: errors.New("connection refused")}
	_, _, err := uc.Load(context.Background(), down)
	if !errors.Is(err, domain.ErrNoVocabulary) {
		t.Errorf("err = %v, want ErrNoVocabulary", err)
	}
}
