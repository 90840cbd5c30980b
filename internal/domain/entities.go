package domain

import "time"

// WordClass is the lexical status of a word measured against the learner's
// vocabulary.
type WordClass string

const (
	ClassMature           WordClass = "mature"
	ClassLearning         WordClass = "learning"
	ClassPotentiallyKnown WordClass = "potentially-known"
	ClassUnknown          WordClass = "unknown"
)

func (c WordClass) String() string { return string(c) }

func (c WordClass) IsValid() bool {
	switch c {
	case ClassMature, ClassLearning, ClassPotentiallyKnown, ClassUnknown:
		return true
	}
	return false
}

// Known reports whether the class counts toward the comprehension
// percentage. Potentially-known words do not.
func (c WordClass) Known() bool {
	return c == ClassMature || c == ClassLearning
}

type WordClassification struct {
	Word        string    `json:"word"`
	Class       WordClass `json:"class"`
	MatchedWord string    `json:"matched_word,omitempty"`
}

// Sentence is one segmented unit of source text. Start and End are byte
// offsets into the original text. Ineligible sentences still contribute
// their words to aggregate counts but are never classified.
type Sentence struct {
	Text      string   `json:"text"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Tokens    []string `json:"tokens,omitempty"`
	WordCount int      `json:"word_count"`
	Eligible  bool     `json:"eligible"`
}

// SentenceClassification holds the two sentence flags and the words that
// produced them. The flags are computed independently but can never both
// be set: IPlusOne requires zero potentially-known words while
// PotentialIPlusOne requires exactly one.
type SentenceClassification struct {
	IPlusOne          bool     `json:"i_plus_one"`
	PotentialIPlusOne bool     `json:"potential_i_plus_one"`
	UnknownWords      []string `json:"unknown_words,omitempty"`
	PotentialWords    []string `json:"potential_words,omitempty"`
}

// Label renders the classification as a display string.
func (s SentenceClassification) Label() string {
	switch {
	case s.IPlusOne:
		return "i+1"
	case s.PotentialIPlusOne:
		return "potential-i+1"
	default:
		return "ordinary"
	}
}

// ComprehensionStats is the aggregate result over a collection of text
// units. TotalWords counts unique normalized words; Percentage is
// KnownWords over TotalWords rounded to the nearest integer, 0 when
// nothing was extracted.
type ComprehensionStats struct {
	TotalWords                 int `json:"total_words"`
	KnownWords                 int `json:"known_words"`
	PotentiallyKnownWords      int `json:"potentially_known_words"`
	Percentage                 int `json:"percentage"`
	IPlusOneSentences          int `json:"i_plus_one_sentences"`
	PotentialIPlusOneSentences int `json:"potential_i_plus_one_sentences"`
}

// Cue is one subtitle cue.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Page is the readable text extracted from a web page, split into
// paragraph-like units.
type Page struct {
	URL   string   `json:"url"`
	Title string   `json:"title"`
	Units []string `json:"units"`
}

// VocabularyEntry is one stored vocabulary word with its source detail.
type VocabularyEntry struct {
	Word      string    `json:"word"`
	Class     WordClass `json:"class"`
	Interval  int       `json:"interval,omitempty"`
	Deck      string    `json:"deck,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotMeta describes the stored vocabulary snapshot.
type SnapshotMeta struct {
	Source     string    `json:"source"`
	SourceHash string    `json:"source_hash,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
	Mature     int       `json:"mature"`
	Learning   int       `json:"learning"`
}

// AnalysisRecord is one stored analysis result, keyed by source.
type AnalysisRecord struct {
	ID         string             `json:"id"`
	Source     string             `json:"source"`
	Units      int                `json:"units"`
	Stats      ComprehensionStats `json:"stats"`
	AnalyzedAt time.Time          `json:"analyzed_at"`
}

// WordOccurrence tallies how often a word appears across analyzed units.
type WordOccurrence struct {
	Word  string    `json:"word"`
	Class WordClass `json:"class"`
	Count int       `json:"count"`
	Units int       `json:"units"`
}
