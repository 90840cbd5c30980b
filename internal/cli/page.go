package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/page"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/render"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var pageJSON bool

var pageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Fetch a web page and score its readable text",
	Long: `Fetch a URL, extract its article text, and analyze it paragraph by
paragraph. Navigation, ads, and boilerplate are dropped before analysis.

Examples:
  selfstudy page https://he.wikipedia.org/wiki/תל_אביב
  selfstudy page https://example.com/article --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.Flags().BoolVar(&pageJSON, "json", false, "output as JSON")
}

func runPage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore()
	if err != nil {
		logger.Warn("vocabulary store unavailable", "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	vocab, source, ok := loadVocabulary(ctx, st)

	extractor := page.NewExtractor(30*time.Second, logger)
	pg, err := extractor.Extract(ctx, args[0])
	if err != nil {
		return fmt.Errorf("page extraction failed: %w", err)
	}
	if len(pg.Units) == 0 {
		return fmt.Errorf("no readable text found at %s", pg.URL)
	}

	report := &usecase.AnalysisReport{}
	if ok {
		report = newAnalyzeUseCase().Report(pg.Units, vocab)
	}

	if st != nil && ok {
		rec := domain.AnalysisRecord{
			ID:         usecase.SourceID(pg.URL),
			Source:     pg.URL,
			Units:      len(pg.Units),
			Stats:      report.Stats,
			AnalyzedAt: time.Now(),
		}
		if err := st.PutReport(rec); err != nil {
			logger.Debug("failed to store report", "source", pg.URL, "error", err)
		}
	}

	if pageJSON {
		out := struct {
			Page       *domain.Page            `json:"page"`
			Vocabulary string                  `json:"vocabulary"`
			Report     *usecase.AnalysisReport `json:"report"`
		}{pg, source, report}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s\n%s\n", render.Header(pg.Title), render.Dim(pg.URL))
	fmt.Printf("Vocabulary: %s\n\n", source)
	if !ok {
		fmt.Println("No vocabulary available; reporting zeroed stats. Run 'selfstudy sync' first.")
	}
	fmt.Println(render.Stats(report.Stats))

	if len(report.Sentences) > 0 {
		fmt.Printf("\n%s\n", render.Header("Sentences worth studying:"))
		for _, s := range report.Sentences {
			fmt.Println("  " + render.Sentence(s.Text, s.Result))
		}
	}

	fmt.Println("\n" + render.Legend())
	return nil
}
