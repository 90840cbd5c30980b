package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/render"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var (
	sentencesJSON  bool
	sentencesLimit int
	sentencesWords int
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences <path>",
	Short: "Pick the sentences worth studying from a file",
	Long: `Build a study sheet from a file: sentences that are exactly one
unknown word away (i+1) come first, potential-i+1 sentences fill the
remainder, each shown with its neighboring lines for context.

Examples:
  selfstudy sentences episode1.srt
  selfstudy sentences chapter.txt --limit 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSentences,
}

func init() {
	rootCmd.AddCommand(sentencesCmd)
	sentencesCmd.Flags().BoolVar(&sentencesJSON, "json", false, "output as JSON")
	sentencesCmd.Flags().IntVar(&sentencesLimit, "limit", 10, "max sentences (0 for all)")
	sentencesCmd.Flags().IntVar(&sentencesWords, "words", 10, "max unknown words (0 for all)")
}

func runSentences(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	units, err := unitsForFile(args[0])
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("no analyzable text in %s", args[0])
	}

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

	report := newAnalyzeUseCase().Report(units, vocab)
	sheetUC := usecase.NewStudySheetUseCase(classifier.NewFrequencyRanker())
	sheet := sheetUC.Build(args[0], units, report, sentencesLimit, sentencesWords)

	if sentencesJSON {
		data, _ := json.MarshalIndent(sheet, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Vocabulary: %s\n", source)
	fmt.Println(render.Stats(sheet.Stats))

	if len(sheet.Sentences) == 0 {
		fmt.Println("\nNo i+1 sentences found. Try an easier text, or sync a fresher vocabulary.")
		return nil
	}

	fmt.Printf("\n%s\n", render.Header("Sentences:"))
	for i, s := range sheet.Sentences {
		fmt.Printf("\n%d. %s %s\n", i+1, render.Flag("["+s.Label+"]"), s.Text)
		if len(s.Targets) > 0 {
			fmt.Printf("   %s %s\n", render.Dim("targets:"), strings.Join(s.Targets, " "))
		}
		if s.Before != "" {
			fmt.Printf("   %s %s\n", render.Dim("before:"), render.Dim(s.Before))
		}
		if s.After != "" {
			fmt.Printf("   %s %s\n", render.Dim("after: "), render.Dim(s.After))
		}
	}

	if len(sheet.Words) > 0 {
		fmt.Printf("\n%s\n", render.Header("Unknown words by frequency:"))
		for _, occ := range sheet.Words {
			fmt.Printf("  %s %s\n",
				render.Word(occ.Word, occ.Class),
				render.Dim(fmt.Sprintf("%d times in %d units", occ.Count, occ.Units)))
		}
	}
	return nil
}
