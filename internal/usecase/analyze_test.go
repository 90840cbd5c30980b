package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

func newTestAnalyze() *AnalyzeUseCase {
	normalizer := hebrew.NewNormalizer(true)
	words := classifier.NewWordClassifier()
	return NewAnalyzeUseCase(
		normalizer,
		hebrew.NewSegmenter(normalizer, 3),
		words,
		classifier.NewSentenceClassifier(words),
		2,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

type fakeProvider struct {
	vocab domain.VocabularySet
	err   error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Fetch(ctx context.Context) (domain.VocabularySet, error) {
	if p.err != nil {
		return domain.VocabularySet{}, p.err
	}
	return p.vocab, nil
}

func TestAggregateEmptyInput(t *testing.T) {
	uc := newTestAnalyze()
	for _, units := range [][]string{nil, {}, {"", "   ", "no hebrew here"}} {
		stats := uc.Aggregate(units, domain.NewVocabularySet([]string{"שלום"}, nil))
		if stats != (domain.ComprehensionStats{}) {
			t.Errorf("Aggregate(%v) = %+v, want zeroed stats", units, stats)
		}
	}
}

func TestAggregateScenario(t *testing.T) {
	uc := newTestAnalyze()
	units := []string{"שלום עולם יפה מאוד"}

	// Two of four words known: 50%, two unknown words, no i+1.
	vocab := domain.NewVocabularySet([]string{"שלום", "עולם"}, nil)
	stats := uc.Aggregate(units, vocab)
	if stats.TotalWords != 4 {
		t.Errorf("TotalWords = %d, want 4", stats.TotalWords)
	}
	if stats.KnownWords != 2 {
		t.Errorf("KnownWords = %d, want 2", stats.KnownWords)
	}
	if stats.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", stats.Percentage)
	}
	if stats.IPlusOneSentences != 0 {
		t.Errorf("IPlusOneSentences = %d, want 0", stats.IPlusOneSentences)
	}

	// Three of four known: exactly one unknown left, the unit is i+1.
	vocab = domain.NewVocabularySet([]string{"שלום", "עולם", "יפה"}, nil)
	stats = uc.Aggregate(units, vocab)
	if stats.KnownWords != 3 {
		t.Errorf("KnownWords = %d, want 3", stats.KnownWords)
	}
	if stats.Percentage != 75 {
		t.Errorf("Percentage = %d, want 75", stats.Percentage)
	}
	if stats.IPlusOneSentences != 1 {
		t.Errorf("IPlusOneSentences = %d, want 1", stats.IPlusOneSentences)
	}
}

func TestAggregateUniqueAcrossUnits(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"ספר"}, nil)
	units := []string{"ספר טוב מאוד", "ספר רע מאוד"}

	report := uc.Report(units, vocab)
	// ספר, טוב, מאוד, רע: each unique word counted once.
	if report.Stats.TotalWords != 4 {
		t.Errorf("TotalWords = %d, want 4", report.Stats.TotalWords)
	}
	if report.Stats.KnownWords != 1 {
		t.Errorf("KnownWords = %d, want 1", report.Stats.KnownWords)
	}

	var repeated *domain.WordOccurrence
	for i := range report.Occurrences {
		if report.Occurrences[i].Word == "ספר" {
			repeated = &report.Occurrences[i]
		}
	}
	if repeated == nil {
		t.Fatal("ספר missing from occurrences")
	}
	if repeated.Count != 2 || repeated.Units != 2 {
		t.Errorf("ספר occurrence = %+v, want Count=2 Units=2", repeated)
	}
}

func TestAggregateShortUnitsNeverFlagged(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"שלום"}, nil)

	// Two tokens: words still counted, sentence tally skipped.
	stats := uc.Aggregate([]string{"שלום מאוד"}, vocab)
	if stats.TotalWords != 2 {
		t.Errorf("TotalWords = %d, want 2", stats.TotalWords)
	}
	if stats.IPlusOneSentences != 0 || stats.PotentialIPlusOneSentences != 0 {
		t.Errorf("short unit was tallied: %+v", stats)
	}
}

func TestAggregateMinTokenLength(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet(nil, nil)

	// Single-letter tokens are dropped by the minimum token length.
	stats := uc.Aggregate([]string{"ו שלום ב"}, vocab)
	if stats.TotalWords != 1 {
		t.Errorf("TotalWords = %d, want 1", stats.TotalWords)
	}
}

func TestAggregatePotentiallyKnownSeparate(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"בית", "שלום"}, nil)

	stats := uc.Aggregate([]string{"שלום בבית"}, vocab)
	if stats.KnownWords != 1 {
		t.Errorf("KnownWords = %d, want 1", stats.KnownWords)
	}
	if stats.PotentiallyKnownWords != 1 {
		t.Errorf("PotentiallyKnownWords = %d, want 1", stats.PotentiallyKnownWords)
	}
	// Percentage counts only known words: 1 of 2.
	if stats.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", stats.Percentage)
	}
}

func TestAggregateVavPromotion(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"ספר"}, nil)

	report := uc.Report([]string{"וספר"}, vocab)
	if report.Stats.KnownWords != 1 {
		t.Errorf("KnownWords = %d, want 1 (vav promotion)", report.Stats.KnownWords)
	}
	if len(report.Words) != 1 || report.Words[0].MatchedWord != "ספר" {
		t.Errorf("Words = %+v, want match attributed to ספר", report.Words)
	}
}

func TestAggregatePercentageRounding(t *testing.T) {
	uc := newTestAnalyze()

	// 1 of 3 known: 33.33 rounds to 33.
	vocab := domain.NewVocabularySet([]string{"שלום"}, nil)
	stats := uc.Aggregate([]string{"שלום מאוד קשה"}, vocab)
	if stats.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33", stats.Percentage)
	}

	// 2 of 3 known: 66.67 rounds to 67.
	vocab = domain.NewVocabularySet([]string{"שלום", "מאוד"}, nil)
	stats = uc.Aggregate([]string{"שלום מאוד קשה"}, vocab)
	if stats.Percentage != 67 {
		t.Errorf("Percentage = %d, want 67", stats.Percentage)
	}
}

func TestReportTextSegments(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"שלום", "עולם", "יפה"}, nil)

	report := uc.ReportText("שלום עולם יפה מאוד. שלום עולם.", true, vocab)
	if report.Stats.IPlusOneSentences != 1 {
		t.Errorf("IPlusOneSentences = %d, want 1", report.Stats.IPlusOneSentences)
	}
	if len(report.Sentences) != 1 {
		t.Fatalf("flagged sentences = %d, want 1", len(report.Sentences))
	}
	if report.Sentences[0].UnitIndex != 0 {
		t.Errorf("UnitIndex = %d, want 0", report.Sentences[0].UnitIndex)
	}
}

func TestRunDegradesToZeroedStats(t *testing.T) {
	uc := newTestAnalyze()
	provider := &fakeProvider{err: errors.New("connection refused")}

	report := uc.Run(context.Background(), provider, []string{"שלום עולם יפה"})
	if report.Stats != (domain.ComprehensionStats{}) {
		t.Errorf("failed fetch must zero the stats, got %+v", report.Stats)
	}
}

func TestRunWithProvider(t *testing.T) {
	uc := newTestAnalyze()
	provider := &fakeProvider{vocab: domain.NewVocabularySet([]string{"שלום"}, nil)}

	report := uc.Run(context.Background(), provider, []string{"שלום"})
	if report.Stats.KnownWords != 1 {
		t.Errorf("KnownWords = %d, want 1", report.Stats.KnownWords)
	}
}

func TestClassifyWords(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"ספר"}, nil)

	results := uc.ClassifyWords([]string{"ספר", "וספר", "בבית"}, vocab)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []domain.WordClass{domain.ClassMature, domain.ClassMature, domain.ClassUnknown}
	for i, cls := range want {
		if results[i].Class != cls {
			t.Errorf("results[%d].Class = %s, want %s", i, results[i].Class, cls)
		}
	}
}

func TestSourceIDStable(t *testing.T) {
	a := SourceID("subtitles/episode1.srt")
	b := SourceID("subtitles/episode1.srt")
	c := SourceID("subtitles/episode2.srt")
	if a != b {
		t.Error("SourceID must be deterministic")
	}
	if a == c {
		t.Error("different sources must get different IDs")
	}
	if len(a) != 16 {
		t.Errorf("SourceID length = %d, want 16 hex chars", len(a))
	}
}
