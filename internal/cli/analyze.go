package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/classifier"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/fs"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/page"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/render"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/subtitle"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var (
	analyzeJSON      bool
	analyzeTopWords  int
	analyzeSentences bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Score text against your vocabulary",
	Long: `Analyze a file, a directory, or stdin and report comprehension:
the share of unique words you know, plus the sentences that are exactly
one unknown word away (i+1).

Subtitle files (.srt, .vtt) are parsed cue by cue, saved pages (.html)
go through readability extraction, and everything else is segmented into
sentences. Directories are walked with the configured include/exclude
patterns.

Examples:
  selfstudy analyze episode1.srt
  selfstudy analyze ./season1/ --top-words 20
  cat chapter.txt | selfstudy analyze -
  selfstudy analyze notes.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeTopWords, "top-words", 10, "unknown words to list by frequency (0 to hide)")
	analyzeCmd.Flags().BoolVar(&analyzeSentences, "sentences", true, "list flagged i+1 sentences")
}

// fileUnits is one analyzed source with its text units.
type fileUnits struct {
	path  string
	units []string
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := GetRootDir()
	if len(args) > 0 {
		path = args[0]
	}

	sources, err := collectSources(path)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("nothing to analyze under %s", path)
	}

	st, err := openStore()
	if err != nil {
		logger.Warn("vocabulary store unavailable", "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	vocab, source, ok := loadVocabulary(ctx, st)
	analyzeUC := newAnalyzeUseCase()

	var bar *progressbar.ProgressBar
	if len(sources) > 1 && !analyzeJSON {
		bar = progressbar.NewOptions(len(sources),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan]Analyzing[reset]"),
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

	type fileReport struct {
		Path   string                  `json:"path"`
		Units  int                     `json:"units"`
		Report *usecase.AnalysisReport `json:"report"`
	}
	var reports []fileReport
	var allUnits []string

	for i, src := range sources {
		report := &usecase.AnalysisReport{}
		if ok {
			report = analyzeUC.Report(src.units, vocab)
		}
		reports = append(reports, fileReport{Path: src.path, Units: len(src.units), Report: report})
		allUnits = append(allUnits, src.units...)

		if st != nil && ok {
			rec := domain.AnalysisRecord{
				ID:         usecase.SourceID(src.path),
				Source:     src.path,
				Units:      len(src.units),
				Stats:      report.Stats,
				AnalyzedAt: time.Now(),
			}
			if err := st.PutReport(rec); err != nil {
				logger.Debug("failed to store report", "source", src.path, "error", err)
			}
		}
		if bar != nil {
			bar.Set(i + 1)
		}
	}

	total := &usecase.AnalysisReport{}
	if ok {
		total = analyzeUC.Report(allUnits, vocab)
	}

	if analyzeJSON {
		out := struct {
			Vocabulary string                  `json:"vocabulary"`
			Files      []fileReport            `json:"files"`
			Total      *usecase.AnalysisReport `json:"total"`
		}{source, reports, total}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Vocabulary: %s (%d mature, %d learning)\n",
		source, vocab.MatureCount(), vocab.LearningCount())
	if !ok {
		fmt.Println("No vocabulary available; reporting zeroed stats. Run 'selfstudy sync' first.")
	}

	for _, r := range reports {
		fmt.Printf("\n%s (%d units)\n", render.Header(r.Path), r.Units)
		fmt.Println(render.Stats(r.Report.Stats))

		if analyzeSentences && len(r.Report.Sentences) > 0 {
			fmt.Printf("\n%s\n", render.Header("Sentences worth studying:"))
			for _, s := range r.Report.Sentences {
				fmt.Println("  " + render.Sentence(s.Text, s.Result))
			}
		}
	}

	if len(reports) > 1 {
		fmt.Printf("\n%s\n", render.Header("Total"))
		fmt.Println(render.Stats(total.Stats))
	}

	if analyzeTopWords > 0 && ok {
		ranker := classifier.NewFrequencyRanker()
		top := ranker.Rank(ranker.FilterClass(total.Occurrences, domain.ClassUnknown), analyzeTopWords)
		if len(top) > 0 {
			fmt.Printf("\n%s\n", render.Header("Most frequent unknown words:"))
			for _, occ := range top {
				fmt.Printf("  %s %s\n",
					render.Word(occ.Word, domain.ClassUnknown),
					render.Dim(fmt.Sprintf("%d times in %d units", occ.Count, occ.Units)))
			}
		}
	}

	fmt.Println("\n" + render.Legend())
	return nil
}

// collectSources resolves the argument into analyzable unit lists:
// "-" reads stdin, directories are walked, files are parsed by type.
func collectSources(path string) ([]fileUnits, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []fileUnits{{path: "stdin", units: segmentText(string(data))}}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %w", err)
	}

	if !info.IsDir() {
		units, err := unitsForFile(abs)
		if err != nil {
			return nil, err
		}
		return []fileUnits{{path: abs, units: units}}, nil
	}

	walker := fs.NewWalker(cfg.Analyze.Includes, cfg.Analyze.Excludes, cfg.Analyze.MaxFileSize)
	files, err := walker.Walk(abs)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", abs, err)
	}

	var sources []fileUnits
	for _, f := range files {
		units, err := unitsForFile(f.Path)
		if err != nil {
			logger.Warn("skipping file", "path", f.Path, "error", err)
			continue
		}
		if len(units) == 0 {
			continue
		}
		sources = append(sources, fileUnits{path: f.Path, units: units})
	}
	return sources, nil
}

// unitsForFile parses subtitles cue by cue and segments everything else.
func unitsForFile(path string) ([]string, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".vtt":
		parser, err := subtitle.ForPath(path, []byte(content))
		if err != nil {
			return nil, err
		}
		cues, err := parser.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return subtitle.Text(cues), nil
	case ".html", ".htm":
		pg, err := page.NewExtractor(0, logger).ExtractHTML(strings.NewReader(content), path)
		if err != nil {
			return nil, err
		}
		return pg.Units, nil
	default:
		return segmentText(content), nil
	}
}

func segmentText(text string) []string {
	segments := newSegmenter().Segment(hebrew.NormalizeInput(text), true)
	units := make([]string, len(segments))
	for i, s := range segments {
		units[i] = s.Text
	}
	return units
}
