// Package classifier resolves words and sentences against a vocabulary.
package classifier

import (
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// prefixVav is the conjunction prefix ("and"). A vav match keeps the class
// of the matched set, attributed to the stripped root.
const prefixVav = 'ו'

// softPrefixes are the preposition prefixes lamed, bet and shin. Unlike
// vav, a match only ever yields potentially-known: the leading letter may
// be part of the word rather than a prefix.
var softPrefixes = [...]rune{'ל', 'ב', 'ש'}

// WordClassifier applies the prefix-stripping membership rules. It is
// stateless and implements port.WordClassifier.
type WordClassifier struct{}

func NewWordClassifier() *WordClassifier {
	return &WordClassifier{}
}

// Classify resolves word against vocab. Precedence: exact mature, exact
// learning, vav-stripped membership (promoted to the matched set's class),
// ל/ב/ש-stripped membership in either set as potentially-known, unknown.
// The word is diacritic-stripped before any comparison.
func (c *WordClassifier) Classify(word string, vocab domain.VocabularySet) domain.WordClassification {
	normalized := hebrew.StripDiacritics(strings.TrimSpace(word))
	result := domain.WordClassification{Word: word, Class: domain.ClassUnknown}
	if normalized == "" {
		return result
	}

	if class, ok := lookup(normalized, vocab); ok {
		result.Class = class
		result.MatchedWord = normalized
		return result
	}

	runes := []rune(normalized)
	if len(runes) < 2 {
		return result
	}

	root := string(runes[1:])
	if runes[0] == prefixVav {
		if class, ok := lookup(root, vocab); ok {
			result.Class = class
			result.MatchedWord = root
			return result
		}
	}
	for _, p := range softPrefixes {
		if runes[0] != p {
			continue
		}
		if _, ok := lookup(root, vocab); ok {
			result.Class = domain.ClassPotentiallyKnown
			result.MatchedWord = root
		}
		break
	}
	return result
}

// lookup probes both sets, mature first.
func lookup(word string, vocab domain.VocabularySet) (domain.WordClass, bool) {
	if vocab.IsMature(word) {
		return domain.ClassMature, true
	}
	if vocab.IsLearning(word) {
		return domain.ClassLearning, true
	}
	return domain.ClassUnknown, false
}
