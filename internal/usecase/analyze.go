package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
)

// minUnitTokens is the floor for sentence-level tallying inside an
// aggregate: units with fewer Hebrew tokens still contribute words but are
// too short to say anything about sentence difficulty.
const minUnitTokens = 3

// AnalyzeUseCase computes comprehension statistics over collections of
// text units (subtitle cues, page paragraphs, arbitrary text blocks).
type AnalyzeUseCase struct {
	tokenizer      port.Tokenizer
	segmenter      port.Segmenter
	words          port.WordClassifier
	sentences      port.SentenceClassifier
	minTokenLength int
	logger         *slog.Logger
}

func NewAnalyzeUseCase(
	tokenizer port.Tokenizer,
	segmenter port.Segmenter,
	words port.WordClassifier,
	sentences port.SentenceClassifier,
	minTokenLength int,
	logger *slog.Logger,
) *AnalyzeUseCase {
	if minTokenLength <= 0 {
		minTokenLength = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeUseCase{
		tokenizer:      tokenizer,
		segmenter:      segmenter,
		words:          words,
		sentences:      sentences,
		minTokenLength: minTokenLength,
		logger:         logger,
	}
}

// AnalysisReport holds the aggregate stats plus the per-word and
// per-sentence detail behind them.
type AnalysisReport struct {
	Stats       domain.ComprehensionStats   `json:"stats"`
	Words       []domain.WordClassification `json:"words,omitempty"`
	Occurrences []domain.WordOccurrence     `json:"occurrences,omitempty"`
	Sentences   []FlaggedSentence           `json:"sentences,omitempty"`
}

// FlaggedSentence pins a flagged unit back to its position in the input.
type FlaggedSentence struct {
	UnitIndex int                           `json:"unit_index"`
	Text      string                        `json:"text"`
	Result    domain.SentenceClassification `json:"result"`
}

// Aggregate folds every unit's Hebrew tokens into a document-wide unique
// word set, classifies each word once, and tallies sentence flags on units
// long enough to judge. Pure: no I/O, the same inputs always produce the
// same stats. Empty input yields zeroed stats.
func (u *AnalyzeUseCase) Aggregate(units []string, vocab domain.VocabularySet) domain.ComprehensionStats {
	return u.Report(units, vocab).Stats
}

// Report is Aggregate keeping the intermediate detail.
func (u *AnalyzeUseCase) Report(units []string, vocab domain.VocabularySet) *AnalysisReport {
	report := &AnalysisReport{}
	unique := make(map[string]*domain.WordOccurrence)

	for idx, unit := range units {
		tokens := u.tokenizer.ExtractTokens(unit, u.minTokenLength)
		if len(tokens) == 0 {
			continue
		}
		normalized := make([]string, len(tokens))
		perUnit := make(map[string]int, len(tokens))
		for i, token := range tokens {
			word := u.tokenizer.StripDiacritics(token)
			normalized[i] = word
			perUnit[word]++
		}
		for word, count := range perUnit {
			occ := unique[word]
			if occ == nil {
				occ = &domain.WordOccurrence{Word: word}
				unique[word] = occ
			}
			occ.Count += count
			occ.Units++
		}
		if len(tokens) < minUnitTokens {
			continue
		}
		sentence := domain.Sentence{
			Text:      strings.TrimSpace(unit),
			Tokens:    normalized,
			WordCount: len(strings.Fields(unit)),
			Eligible:  true,
		}
		cls := u.sentences.ClassifySentence(sentence, vocab)
		if cls.IPlusOne {
			report.Stats.IPlusOneSentences++
		}
		if cls.PotentialIPlusOne {
			report.Stats.PotentialIPlusOneSentences++
		}
		if cls.IPlusOne || cls.PotentialIPlusOne {
			report.Sentences = append(report.Sentences, FlaggedSentence{
				UnitIndex: idx,
				Text:      sentence.Text,
				Result:    cls,
			})
		}
	}

	words := make([]string, 0, len(unique))
	for word := range unique {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		cls := u.words.Classify(word, vocab)
		occ := unique[word]
		occ.Class = cls.Class
		report.Words = append(report.Words, cls)
		report.Occurrences = append(report.Occurrences, *occ)
		switch {
		case cls.Class.Known():
			report.Stats.KnownWords++
		case cls.Class == domain.ClassPotentiallyKnown:
			report.Stats.PotentiallyKnownWords++
		}
	}
	report.Stats.TotalWords = len(unique)
	if report.Stats.TotalWords > 0 {
		ratio := float64(report.Stats.KnownWords) / float64(report.Stats.TotalWords)
		report.Stats.Percentage = int(math.Round(ratio * 100))
	}
	return report
}

// ReportText segments a raw text block and aggregates the resulting units.
func (u *AnalyzeUseCase) ReportText(text string, newlineSensitive bool, vocab domain.VocabularySet) *AnalysisReport {
	segments := u.segmenter.Segment(text, newlineSensitive)
	units := make([]string, len(segments))
	for i, s := range segments {
		units[i] = s.Text
	}
	return u.Report(units, vocab)
}

// ClassifyWords resolves each word independently against vocab.
func (u *AnalyzeUseCase) ClassifyWords(words []string, vocab domain.VocabularySet) []domain.WordClassification {
	results := make([]domain.WordClassification, len(words))
	for i, word := range words {
		results[i] = u.words.Classify(word, vocab)
	}
	return results
}

// Run fetches vocabulary from the provider and aggregates units against
// it. A failed fetch degrades to zeroed stats rather than an error: the
// comprehension display prefers "0%" over breaking.
func (u *AnalyzeUseCase) Run(ctx context.Context, provider port.VocabularyProvider, units []string) *AnalysisReport {
	vocab, err := provider.Fetch(ctx)
	if err != nil {
		u.logger.Warn("vocabulary fetch failed, reporting zeroed stats",
			"provider", provider.Name(), "error", err)
		return &AnalysisReport{}
	}
	return u.Report(units, vocab)
}

// SourceID derives a stable report key from a source path or URL.
func SourceID(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:8])
}
