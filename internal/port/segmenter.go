package port

import "github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"

// Segmenter splits a text block into sentence-like units.
type Segmenter interface {
	// Segment splits on sentence-ending punctuation. Newlines act as
	// boundaries only when newlineSensitive is true: page text breaks
	// lines between thoughts, subtitle cues wrap mid-sentence.
	Segment(text string, newlineSensitive bool) []domain.Sentence
}
