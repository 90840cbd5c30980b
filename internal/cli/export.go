package cli

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

//go:embed templates/*.tmpl
var exportTemplates embed.FS

var (
	exportFormat string
	exportOutput string
	exportLimit  int
	exportWords  int
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export a study sheet",
	Long: `Build a study sheet from a file and write it out for use elsewhere:
markdown for notes, or TSV sentence cards for importing back into Anki.

Examples:
  selfstudy export episode1.srt                       # Markdown to stdout
  selfstudy export episode1.srt --format tsv -o cards.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "output format: markdown or tsv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 20, "max sentences (0 for all)")
	exportCmd.Flags().IntVar(&exportWords, "words", 20, "max unknown words (0 for all)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	vocab, _, ok := loadVocabulary(ctx, st)
	if !ok {
		return fmt.Errorf("no vocabulary available, run 'selfstudy sync' first")
	}

	report := newAnalyzeUseCase().Report(units, vocab)
	sheetUC := usecase.NewStudySheetUseCase(classifier.NewFrequencyRanker())
	sheet := sheetUC.Build(args[0], units, report, exportLimit, exportWords)

	var out bytes.Buffer
	switch exportFormat {
	case "markdown", "md":
		if err := renderMarkdown(&out, sheet); err != nil {
			return err
		}
	case "tsv":
		renderTSV(&out, sheet)
	default:
		return fmt.Errorf("unsupported format: %s (want markdown or tsv)", exportFormat)
	}

	if exportOutput == "" {
		fmt.Print(out.String())
		return nil
	}
	if err := os.WriteFile(exportOutput, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	fmt.Printf("Study sheet written to %s (%d sentences, %d words)\n",
		exportOutput, len(sheet.Sentences), len(sheet.Words))
	return nil
}

func renderMarkdown(buf *bytes.Buffer, sheet *usecase.StudySheet) error {
	tmplContent, err := exportTemplates.ReadFile("templates/studysheet.md.tmpl")
	if err != nil {
		return fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New("studysheet").Funcs(template.FuncMap{
		"join": strings.Join,
		"inc":  func(i int) int { return i + 1 },
	}).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(buf, sheet); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

// renderTSV writes one "sentence<TAB>target words" line per study
// sentence, ready for Anki's text import.
func renderTSV(buf *bytes.Buffer, sheet *usecase.StudySheet) {
	for _, s := range sheet.Sentences {
		fmt.Fprintf(buf, "%s\t%s\n", s.Text, strings.Join(s.Targets, " "))
	}
}
