package hebrew

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// Sentence terminators: the Latin full stops plus the Hebrew sof pasuq.
func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '׃':
		return true
	}
	return false
}

// Segmenter splits text blocks into sentence-like units. It implements
// port.Segmenter.
type Segmenter struct {
	normalizer *Normalizer
	minWords   int
}

// NewSegmenter returns a segmenter. minWords is the eligibility floor:
// shorter segments (and segments with no Hebrew tokens) still carry their
// words into aggregate counts but are never classified as sentences.
func NewSegmenter(normalizer *Normalizer, minWords int) *Segmenter {
	if minWords <= 0 {
		minWords = 3
	}
	return &Segmenter{normalizer: normalizer, minWords: minWords}
}

// Segment splits text on sentence-ending punctuation, keeping the
// terminator with its sentence. Each returned segment records the byte
// span of its trimmed text within the input. Empty segments (runs of
// terminators, blank lines) are dropped.
func (s *Segmenter) Segment(text string, newlineSensitive bool) []domain.Sentence {
	var sentences []domain.Sentence
	start := 0
	flush := func(end int) {
		segment := text[start:end]
		segStart := start
		start = end
		ltrimmed := strings.TrimLeftFunc(segment, unicode.IsSpace)
		leading := len(segment) - len(ltrimmed)
		trimmed := strings.TrimRightFunc(ltrimmed, unicode.IsSpace)
		if !hasContent(trimmed) {
			return
		}
		tokens := s.normalizer.ExtractTokens(trimmed, 1)
		words := len(strings.Fields(trimmed))
		sentences = append(sentences, domain.Sentence{
			Text:      trimmed,
			Start:     segStart + leading,
			End:       segStart + leading + len(trimmed),
			Tokens:    tokens,
			WordCount: words,
			Eligible:  len(tokens) > 0 && words >= s.minWords,
		})
	}
	for i, r := range text {
		if isTerminator(r) || (newlineSensitive && r == '\n') {
			flush(i + utf8.RuneLen(r))
		}
	}
	flush(len(text))
	return sentences
}

// hasContent reports whether s holds at least one letter or digit.
// Runs of terminators between sentences produce punctuation-only
// fragments; those are not segments.
func hasContent(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
