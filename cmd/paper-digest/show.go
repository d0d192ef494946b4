// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/insights"
	"github.com/pdiddy/paper-digest/internal/snapshot"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
)

var showCmd = &cobra.Command{
	Use:   "show [DATE]",
	Short: "Print a stored digest (default: the latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int("limit", 10, "number of papers to list (0 = all)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := digestConfig()
	if err != nil {
		return err
	}
	store := snapshot.NewStore(cfg.Report.DataDir)

	date := ""
	if len(args) == 1 {
		date = args[0]
	} else {
		date, err = store.Latest()
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("no digest in %s yet: run `paper-digest run` first", store.Dir())
		}
		if err != nil {
			return err
		}
	}

	snap, err := store.Read(date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Digest for %s (%d papers)\n\n%s\n\n", snap.Date, snap.Insights.TotalPapers, snap.Insights.Narrative)

	limit, _ := cmd.Flags().GetInt("limit")
	papers := insights.ByImportance(snap.Papers)
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	rows := make([][]string, 0, len(papers))
	for i, p := range papers {
		ai := string(p.AIStatus)
		if ai == "" {
			ai = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p.ImportanceScore, 'f', 2, 64),
			p.Source,
			truncate(p.Title, 70),
			ai,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Score", "Source", "Title", "AI"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	))

	topics := insights.Ranked(snap.Insights.TopicDistribution)
	if len(topics) > 0 {
		trows := make([][]string, 0, len(topics))
		for _, c := range topics {
			trows = append(trows, []string{taxonomy.DisplayName(c.Key), strconv.Itoa(c.Count)})
		}
		fmt.Fprintln(out, renderTable([]string{"Topic", "Papers"}, trows, []columnAlignment{alignLeft, alignRight}))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
