package classifier

import (
	"unicode/utf8"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// SentenceClassifier counts the unknown and potentially-known words in a
// sentence and derives the i+1 flags. It implements port.SentenceClassifier.
type SentenceClassifier struct {
	words *WordClassifier
}

func NewSentenceClassifier(words *WordClassifier) *SentenceClassifier {
	return &SentenceClassifier{words: words}
}

// ClassifySentence classifies every unique normalized token of two or more
// letters. The flags are computed independently from the two counts:
//
//	i+1            : unknown == 1 && potential == 0
//	potential i+1  : potential == 1 && unknown <= 1
//
// The conjunction of both requires potential to be 0 and 1 at once, so a
// sentence can never carry both flags. Ineligible sentences return the
// zero classification.
func (c *SentenceClassifier) ClassifySentence(sentence domain.Sentence, vocab domain.VocabularySet) domain.SentenceClassification {
	var result domain.SentenceClassification
	if !sentence.Eligible {
		return result
	}
	seen := make(map[string]struct{}, len(sentence.Tokens))
	for _, token := range sentence.Tokens {
		normalized := hebrew.StripDiacritics(token)
		if utf8.RuneCountInString(normalized) < 2 {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		switch c.words.Classify(normalized, vocab).Class {
		case domain.ClassUnknown:
			result.UnknownWords = append(result.UnknownWords, normalized)
		case domain.ClassPotentiallyKnown:
			result.PotentialWords = append(result.PotentialWords, normalized)
		}
	}
	unknown := len(result.UnknownWords)
	potential := len(result.PotentialWords)
	result.IPlusOne = unknown == 1 && potential == 0
	result.PotentialIPlusOne = potential == 1 && unknown <= 1
	return result
}
