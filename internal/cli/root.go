package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/config"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/anki"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/store"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/app"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "selfstudy",
	Short: "Hebrew comprehension analysis against your Anki vocabulary",
	Long: `selfstudy measures how much Hebrew you can actually read.

It pulls your known words from Anki (or plain word lists), then scores
subtitles, web pages, and text files against them: which words you know,
which you might know behind a prefix, and which sentences are exactly one
unknown word away (i+1) and so worth studying next.

Example usage:
  selfstudy sync                  # Pull vocabulary from AnkiConnect
  selfstudy analyze episode1.srt  # Score a subtitle file
  selfstudy word ושלום            # Explain one word's classification
  selfstudy serve                 # Local HTTP API for other tools`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = app.NewLogger(cfg.Logging)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./selfstudy.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "data directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// newAnkiProvider wires the AnkiConnect client from config.
func newAnkiProvider() *anki.Provider {
	client := anki.NewClient(cfg.Anki.URL, cfg.Anki.Timeout(), logger)
	decks := make([]anki.DeckQuery, len(cfg.Anki.Decks))
	for i, d := range cfg.Anki.Decks {
		decks[i] = anki.DeckQuery{Query: d.Query, Field: d.Field}
	}
	return anki.NewProvider(client, decks, cfg.Anki.MatureIntervalDays, logger)
}

// openStore opens the vocabulary database under the data directory,
// creating the directory when missing.
func openStore() (*store.BoltStore, error) {
	if err := config.EnsureDataDir(rootDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	st, err := store.NewBoltStore(config.VocabDBPath(rootDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary store: %w", err)
	}
	return st, nil
}

// newAnalyzeUseCase builds the analysis pipeline from config.
func newAnalyzeUseCase() *usecase.AnalyzeUseCase {
	normalizer := hebrew.NewNormalizer(cfg.Analyze.StripBrackets)
	words := classifier.NewWordClassifier()
	return usecase.NewAnalyzeUseCase(
		normalizer,
		hebrew.NewSegmenter(normalizer, cfg.Analyze.MinSentenceWords),
		words,
		classifier.NewSentenceClassifier(words),
		cfg.Analyze.MinTokenLength,
		logger,
	)
}

func newSegmenter() *hebrew.Segmenter {
	return hebrew.NewSegmenter(hebrew.NewNormalizer(cfg.Analyze.StripBrackets), cfg.Analyze.MinSentenceWords)
}

// loadVocabulary returns the working vocabulary: Anki when reachable, the
// stored snapshot otherwise. ok is false when neither could supply one;
// callers then report zeroed stats instead of failing. st may be nil when
// the store could not be opened.
func loadVocabulary(ctx context.Context, st *store.BoltStore) (domain.VocabularySet, string, bool) {
	provider := newAnkiProvider()

	if st == nil {
		vocab, err := provider.Fetch(ctx)
		if err != nil {
			logger.Warn("no vocabulary available, every word will read as unknown", "error", err)
			return domain.VocabularySet{}, "none", false
		}
		return vocab, provider.Name(), true
	}

	vocabUC := usecase.NewVocabularyUseCase(st, logger)
	vocab, source, err := vocabUC.Load(ctx, provider)
	if err != nil {
		logger.Warn("no vocabulary available, every word will read as unknown", "error", err)
		return domain.VocabularySet{}, "none", false
	}
	return vocab, source, true
}
