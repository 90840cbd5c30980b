package usecase

import (
	"testing"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

func TestBuildStudySheet(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"שלום", "עולם", "יפה", "טוב"}, nil)
	// The middle unit has exactly one unknown word; its neighbors are
	// fully known and should appear as context.
	units := []string{
		"שלום עולם יפה",
		"שלום עולם יפה מאוד",
		"שלום טוב עולם",
	}
	report := uc.Report(units, vocab)

	sheet := NewStudySheetUseCase(classifier.NewFrequencyRanker()).
		Build("lesson.txt", units, report, 10, 5)

	if sheet.Source != "lesson.txt" {
		t.Errorf("Source = %q", sheet.Source)
	}
	if len(sheet.Sentences) != 1 {
		t.Fatalf("sentences = %d, want 1", len(sheet.Sentences))
	}
	got := sheet.Sentences[0]
	if got.Label != "i+1" {
		t.Errorf("Label = %q, want i+1", got.Label)
	}
	if len(got.Targets) != 1 || got.Targets[0] != "מאוד" {
		t.Errorf("Targets = %v, want [מאוד]", got.Targets)
	}
	if got.Before != units[0] || got.After != units[2] {
		t.Errorf("context = %q / %q", got.Before, got.After)
	}

	if len(sheet.Words) != 1 || sheet.Words[0].Word != "מאוד" {
		t.Errorf("Words = %+v, want the unknown word מאוד", sheet.Words)
	}
}

func TestBuildStudySheetOrdersIPlusOneFirst(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"שלום", "עולם", "בית"}, nil)
	// First unit is potential-i+1 (bet prefix), second is true i+1.
	units := []string{
		"שלום עולם בבית",
		"שלום עולם מאוד",
	}
	report := uc.Report(units, vocab)

	sheet := NewStudySheetUseCase(classifier.NewFrequencyRanker()).
		Build("x", units, report, 0, 0)
	if len(sheet.Sentences) != 2 {
		t.Fatalf("sentences = %d, want 2", len(sheet.Sentences))
	}
	if sheet.Sentences[0].Label != "i+1" {
		t.Errorf("first sentence label = %q, true i+1 must sort first", sheet.Sentences[0].Label)
	}
	if sheet.Sentences[1].Label != "potential-i+1" {
		t.Errorf("second sentence label = %q", sheet.Sentences[1].Label)
	}
}

func TestBuildStudySheetLimit(t *testing.T) {
	uc := newTestAnalyze()
	vocab := domain.NewVocabularySet([]string{"שלום", "עולם"}, nil)
	units := []string{
		"שלום עולם אחד",
		"שלום עולם שתיים",
		"שלום עולם שלוש",
	}
	report := uc.Report(units, vocab)
	if report.Stats.IPlusOneSentences != 3 {
		t.Fatalf("setup: want 3 i+1 units, got %d", report.Stats.IPlusOneSentences)
	}

	sheet := NewStudySheetUseCase(classifier.NewFrequencyRanker()).
		Build("x", units, report, 2, 0)
	if len(sheet.Sentences) != 2 {
		t.Errorf("sentences = %d, want capped at 2", len(sheet.Sentences))
	}
}
