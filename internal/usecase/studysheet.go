package usecase

import (
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// StudySheet pairs the most valuable sentences of an analyzed source with
// its most frequent unknown words.
type StudySheet struct {
	Source    string                    `json:"source"`
	Stats     domain.ComprehensionStats `json:"stats"`
	Sentences []StudySentence           `json:"sentences"`
	Words     []domain.WordOccurrence   `json:"words"`
}

// StudySentence is one flagged sentence with its neighboring units for
// context.
type StudySentence struct {
	Text    string   `json:"text"`
	Label   string   `json:"label"`
	Targets []string `json:"targets"`
	Before  string   `json:"before,omitempty"`
	After   string   `json:"after,omitempty"`
}

// StudySheetUseCase selects i+1 sentences (then potential-i+1) up to a
// limit and ranks the remaining unknown words by frequency.
type StudySheetUseCase struct {
	ranker *classifier.FrequencyRanker
}

func NewStudySheetUseCase(ranker *classifier.FrequencyRanker) *StudySheetUseCase {
	return &StudySheetUseCase{ranker: ranker}
}

// Build assembles a sheet from an analysis. units must be the same slice
// the report was computed over; neighbor context comes from it.
// maxSentences and maxWords cap the sections, <= 0 means no cap.
func (u *StudySheetUseCase) Build(source string, units []string, report *AnalysisReport, maxSentences, maxWords int) *StudySheet {
	sheet := &StudySheet{Source: source, Stats: report.Stats}

	full := func() bool {
		return maxSentences > 0 && len(sheet.Sentences) >= maxSentences
	}
	add := func(pick func(FlaggedSentence) bool) {
		for _, fs := range report.Sentences {
			if full() {
				return
			}
			if !pick(fs) {
				continue
			}
			sentence := StudySentence{
				Text:  fs.Text,
				Label: fs.Result.Label(),
			}
			sentence.Targets = append(sentence.Targets, fs.Result.UnknownWords...)
			sentence.Targets = append(sentence.Targets, fs.Result.PotentialWords...)
			if fs.UnitIndex > 0 && fs.UnitIndex-1 < len(units) {
				sentence.Before = strings.TrimSpace(units[fs.UnitIndex-1])
			}
			if fs.UnitIndex+1 < len(units) {
				sentence.After = strings.TrimSpace(units[fs.UnitIndex+1])
			}
			sheet.Sentences = append(sheet.Sentences, sentence)
		}
	}

	// True i+1 sentences first; potential ones fill the remainder.
	add(func(fs FlaggedSentence) bool { return fs.Result.IPlusOne })
	add(func(fs FlaggedSentence) bool { return fs.Result.PotentialIPlusOne })

	unknown := u.ranker.FilterClass(report.Occurrences, domain.ClassUnknown)
	sheet.Words = u.ranker.Rank(unknown, maxWords)
	return sheet
}
