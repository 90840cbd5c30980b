//go:build js && wasm

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"syscall/js"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/memstore"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var (
	store     *memstore.MemoryStore
	tokenizer *hebrew.Normalizer
	words     *classifier.WordClassifier
	analyze   *usecase.AnalyzeUseCase
	vocab     domain.VocabularySet
)

func init() {
	store = memstore.NewMemoryStore()
	tokenizer = hebrew.NewNormalizer(true)
	words = classifier.NewWordClassifier()
	analyze = usecase.NewAnalyzeUseCase(
		tokenizer,
		hebrew.NewSegmenter(tokenizer, 3),
		words,
		classifier.NewSentenceClassifier(words),
		2,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("hebrewLoadVocabulary", js.FuncOf(loadVocabulary))
	js.Global().Set("hebrewClassify", js.FuncOf(classifyWord))
	js.Global().Set("hebrewAnalyze", js.FuncOf(analyzeUnits))
	js.Global().Set("hebrewTokens", js.FuncOf(extractTokens))
	js.Global().Set("hebrewVocabulary", js.FuncOf(vocabularyCounts))

	<-c
}

func loadVocabulary(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: hebrewLoadVocabulary(matureJSON, learningJSON)")
	}

	var mature, learning []string
	if err := json.Unmarshal([]byte(args[0].String()), &mature); err != nil {
		return makeError("invalid mature words: " + err.Error())
	}
	if err := json.Unmarshal([]byte(args[1].String()), &learning); err != nil {
		return makeError("invalid learning words: " + err.Error())
	}

	now := time.Now()
	entries := make([]domain.VocabularyEntry, 0, len(mature)+len(learning))
	for _, w := range mature {
		entries = append(entries, domain.VocabularyEntry{
			Word: hebrew.StripDiacritics(hebrew.NormalizeInput(w)), Class: domain.ClassMature, UpdatedAt: now,
		})
	}
	for _, w := range learning {
		entries = append(entries, domain.VocabularyEntry{
			Word: hebrew.StripDiacritics(hebrew.NormalizeInput(w)), Class: domain.ClassLearning, UpdatedAt: now,
		})
	}
	meta := domain.SnapshotMeta{
		Source:    "extension",
		FetchedAt: now,
		Mature:    len(mature),
		Learning:  len(learning),
	}
	if err := store.ReplaceSnapshot(entries, meta); err != nil {
		return makeError("failed to store vocabulary: " + err.Error())
	}

	loaded, _, err := store.LoadSnapshot()
	if err != nil {
		return makeError("failed to load vocabulary: " + err.Error())
	}
	vocab = loaded

	return makeResult(map[string]interface{}{
		"mature":   vocab.MatureCount(),
		"learning": vocab.LearningCount(),
	})
}

func classifyWord(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: hebrewClassify(word)")
	}

	result := words.Classify(hebrew.NormalizeInput(args[0].String()), vocab)

	return makeResult(map[string]interface{}{
		"word":        result.Word,
		"class":       result.Class.String(),
		"matchedWord": result.MatchedWord,
	})
}

func analyzeUnits(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: hebrewAnalyze(unitsJSON)")
	}

	var units []string
	if err := json.Unmarshal([]byte(args[0].String()), &units); err != nil {
		return makeError("invalid units: " + err.Error())
	}
	for i, unit := range units {
		units[i] = hebrew.NormalizeInput(unit)
	}

	report := analyze.Report(units, vocab)
	data, err := json.Marshal(report)
	if err != nil {
		return makeError("failed to encode report: " + err.Error())
	}
	return string(data)
}

func extractTokens(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: hebrewTokens(text, [minLength])")
	}

	minLength := 1
	if len(args) > 1 {
		minLength = args[1].Int()
	}

	tokens := tokenizer.ExtractTokens(hebrew.NormalizeInput(args[0].String()), minLength)
	data, _ := json.Marshal(tokens)
	return string(data)
}

func vocabularyCounts(this js.Value, args []js.Value) interface{} {
	return makeResult(map[string]interface{}{
		"mature":   vocab.MatureCount(),
		"learning": vocab.LearningCount(),
		"empty":    vocab.Empty(),
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
