package domain

import (
	"sort"
	"strings"
)

// VocabularySet is an immutable snapshot of the learner's vocabulary, split
// into mature words (stable, long review interval) and learning words
// (recently introduced). Entries are normalized on construction and probes
// are normalized on every lookup, so callers may supply raw or pointed
// forms on either side. The zero value behaves as a pair of empty sets.
type VocabularySet struct {
	mature   map[string]struct{}
	learning map[string]struct{}
}

// NewVocabularySet builds a set from raw word lists. Blank entries are
// dropped and duplicates collapse.
func NewVocabularySet(mature, learning []string) VocabularySet {
	return VocabularySet{
		mature:   buildSet(mature),
		learning: buildSet(learning),
	}
}

func buildSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = stripMarks(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// IsMature reports whether the word, after normalization, is in the mature set.
func (v VocabularySet) IsMature(word string) bool {
	_, ok := v.mature[stripMarks(word)]
	return ok
}

// IsLearning reports whether the word, after normalization, is in the learning set.
func (v VocabularySet) IsLearning(word string) bool {
	_, ok := v.learning[stripMarks(word)]
	return ok
}

func (v VocabularySet) MatureCount() int { return len(v.mature) }

func (v VocabularySet) LearningCount() int { return len(v.learning) }

// Empty reports whether both sets are empty.
func (v VocabularySet) Empty() bool {
	return len(v.mature) == 0 && len(v.learning) == 0
}

// Words returns sorted copies of both sets, for persistence and display.
func (v VocabularySet) Words() (mature, learning []string) {
	mature = make([]string, 0, len(v.mature))
	for w := range v.mature {
		mature = append(mature, w)
	}
	learning = make([]string, 0, len(v.learning))
	for w := range v.learning {
		learning = append(learning, w)
	}
	sort.Strings(mature)
	sort.Strings(learning)
	return mature, learning
}

// stripMarks removes Hebrew diacritic runes (nikud and cantillation,
// U+0591..U+05C7) so pointed and unpointed spellings compare equal.
func stripMarks(s string) string {
	clean := true
	for _, r := range s {
		if r >= 0x0591 && r <= 0x05C7 {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x0591 && r <= 0x05C7 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
