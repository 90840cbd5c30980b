package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/render"
)

var wordJSON bool

var wordCmd = &cobra.Command{
	Use:   "word <word> [word...]",
	Short: "Explain how words classify against your vocabulary",
	Long: `Classify words the way analysis does: exact match first, then the
vav conjunction prefix (which keeps the matched class), then the ל/ב/ש
preposition prefixes (which only ever yield potentially-known). Diacritics
never affect the result.

Examples:
  selfstudy word שלום
  selfstudy word ושלום בבית לספר --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWord,
}

func init() {
	rootCmd.AddCommand(wordCmd)
	wordCmd.Flags().BoolVar(&wordJSON, "json", false, "output as JSON")
}

func runWord(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore()
	if err != nil {
		logger.Warn("vocabulary store unavailable", "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	vocab, source, ok := loadVocabulary(ctx, st)
	if !ok {
		return fmt.Errorf("no vocabulary available, run 'selfstudy sync' first")
	}

	results := newAnalyzeUseCase().ClassifyWords(args, vocab)

	if wordJSON {
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Vocabulary: %s\n\n", source)
	for _, r := range results {
		line := fmt.Sprintf("%s  %s", render.Word(r.Word, r.Class), render.Class(r.Class))
		if r.MatchedWord != "" && r.MatchedWord != r.Word {
			line += render.Dim(fmt.Sprintf(" (via %s)", r.MatchedWord))
		}
		if st != nil && r.MatchedWord != "" {
			if entry, err := st.GetEntry(r.MatchedWord); err == nil && entry.Interval > 0 {
				line += render.Dim(fmt.Sprintf("  interval %dd, deck %q", entry.Interval, entry.Deck))
			}
		}
		fmt.Println(line)
	}
	return nil
}
