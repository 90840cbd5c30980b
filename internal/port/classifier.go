package port

import "github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"

// WordClassifier resolves a single word against a vocabulary.
type WordClassifier interface {
	Classify(word string, vocab domain.VocabularySet) domain.WordClassification
}

// SentenceClassifier flags i+1 and potential-i+1 sentences.
type SentenceClassifier interface {
	ClassifySentence(sentence domain.Sentence, vocab domain.VocabularySet) domain.SentenceClassification
}
