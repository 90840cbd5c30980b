package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/config"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/store"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/wordlist"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var (
	syncMatureFile   string
	syncLearningFile string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull vocabulary into the local snapshot",
	Long: `Fetch your vocabulary from AnkiConnect and replace the stored snapshot.
Cards with a review interval at or above the mature threshold count as
mature; shorter intervals count as learning; unseen cards are skipped.

Plain word lists work as an offline alternative to Anki.

Examples:
  selfstudy sync                                   # From AnkiConnect
  selfstudy sync --mature-file known.txt           # From a word list
  selfstudy sync --mature-file m.txt --learning-file l.txt`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncMatureFile, "mature-file", "", "read mature words from a file instead of Anki")
	syncCmd.Flags().StringVar(&syncLearningFile, "learning-file", "", "read learning words from a file (needs --mature-file)")
}

func runSync(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	check, err := st.CheckSnapshot(cfg)
	if err != nil {
		return fmt.Errorf("failed to check snapshot: %w", err)
	}
	if check.NeedsResync && check.OldVersion > 0 {
		fmt.Printf("Snapshot refresh required: %s\n", check.Reason)
	}

	var provider port.VocabularyProvider
	if syncMatureFile != "" {
		provider = wordlist.NewProvider(syncMatureFile, syncLearningFile)
	} else {
		if syncLearningFile != "" {
			return fmt.Errorf("--learning-file needs --mature-file")
		}
		ankiProvider := newAnkiProvider()

		var bar *progressbar.ProgressBar
		ankiProvider.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("[cyan]Fetching cards[reset]"),
					progressbar.OptionSetTheme(progressbar.Theme{
						Saucer:        "[green]=[reset]",
						SaucerHead:    "[green]>[reset]",
						SaucerPadding: " ",
						BarStart:      "[",
						BarEnd:        "]",
					}),
					progressbar.OptionOnCompletion(func() {
						fmt.Println()
					}),
				)
			}
			bar.Set(done)
		}
		provider = ankiProvider
	}

	vocabUC := usecase.NewVocabularyUseCase(st, logger)

	fmt.Printf("Syncing vocabulary from %s...\n", provider.Name())
	result, err := vocabUC.Sync(cmd.Context(), provider, store.ComputeSourceHash(cfg))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if err := st.MarkSynced(cfg); err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}

	fmt.Printf("\nSync complete:\n")
	fmt.Printf("  Source:    %s\n", result.Source)
	fmt.Printf("  Mature:    %d words\n", result.Mature)
	fmt.Printf("  Learning:  %d words\n", result.Learning)
	fmt.Printf("\nSnapshot stored at: %s\n", config.VocabDBPath(rootDir))
	return nil
}
