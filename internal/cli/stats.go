package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/render"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the stored vocabulary snapshot and analysis history",
	Long: `Show what the local snapshot holds: when it was synced, from where,
how many words it carries, and the comprehension scores of everything
analyzed so far.

Examples:
  selfstudy stats
  selfstudy stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var meta *domain.SnapshotMeta
	vocab, m, err := st.LoadSnapshot()
	switch {
	case err == nil:
		meta = &m
	case errors.Is(err, domain.ErrNoVocabulary):
		// Reported below; analysis history may still exist.
	default:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	check, err := st.CheckSnapshot(cfg)
	if err != nil {
		return err
	}

	reports, err := st.ListReports()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].AnalyzedAt.After(reports[j].AnalyzedAt)
	})

	if statsJSON {
		out := struct {
			Snapshot    *domain.SnapshotMeta    `json:"snapshot,omitempty"`
			NeedsResync bool                    `json:"needs_resync"`
			Reports     []domain.AnalysisRecord `json:"reports"`
		}{meta, check.NeedsResync, reports}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if meta == nil {
		fmt.Println("No vocabulary snapshot stored yet. Run 'selfstudy sync' first.")
	} else {
		fmt.Println(render.Header("Vocabulary snapshot"))
		fmt.Printf("  Source:    %s\n", meta.Source)
		fmt.Printf("  Synced:    %s\n", meta.FetchedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  Mature:    %d words\n", vocab.MatureCount())
		fmt.Printf("  Learning:  %d words\n", vocab.LearningCount())
	}
	if check.NeedsResync && check.OldVersion > 0 {
		fmt.Printf("\n%s %s\n", render.Flag("Resync recommended:"), check.Reason)
	}

	if len(reports) == 0 {
		fmt.Println("\nNothing analyzed yet.")
		return nil
	}

	fmt.Printf("\n%s\n", render.Header("Analysis history"))
	for _, rec := range reports {
		fmt.Printf("  %3d%%  %s %s\n",
			rec.Stats.Percentage,
			rec.Source,
			render.Dim(fmt.Sprintf("(%d words, %d i+1, %s)",
				rec.Stats.TotalWords,
				rec.Stats.IPlusOneSentences,
				rec.AnalyzedAt.Format("2006-01-02"))))
	}
	return nil
}
