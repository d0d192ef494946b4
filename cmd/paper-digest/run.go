// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/pipeline"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, score, enrich and publish today's digest",
	Long: `Run executes one batch: it fetches recent papers from every enabled
source, filters them against the topic taxonomy, removes duplicates,
scores them, summarizes the most relevant with the configured AI model,
and writes data/papers_DATE.json plus reports/digest_DATE.html.

A failing source contributes nothing. When no source returns anything the
built-in demo dataset is used so a digest is always produced.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("days", -1, "recency window in days (default from config, 7)")
	runCmd.Flags().Bool("dry-run", false, "make no AI calls")
	runCmd.Flags().Bool("demo", false, "use the built-in demo dataset (implies --dry-run)")
	runCmd.Flags().Int("max-ai", -1, "maximum papers to summarize under the global policy")
	runCmd.Flags().String("policy", "", "enrichment selection policy: global or per-topic")
	runCmd.Flags().String("out", "", "base directory for data/, reports/ and charts/")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := digestConfig()
	if err != nil {
		return err
	}

	if days, _ := cmd.Flags().GetInt("days"); days >= 0 {
		cfg.Sources.DaysBack = days
	}
	if maxAI, _ := cmd.Flags().GetInt("max-ai"); maxAI >= 0 {
		cfg.Enrichment.MaxAIPapers = maxAI
	}
	if policy, _ := cmd.Flags().GetString("policy"); policy != "" {
		cfg.Enrichment.Policy = types.SelectionPolicy(policy)
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Report.DataDir = filepath.Join(out, "data")
		cfg.Report.ReportsDir = filepath.Join(out, "reports")
		cfg.Report.ChartsDir = filepath.Join(out, "charts")
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	demo, _ := cmd.Flags().GetBool("demo")

	p, err := pipeline.New(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := p.Run(context.Background(), pipeline.RunOptions{DryRun: dryRun, Demo: demo})
	if err != nil {
		return err
	}

	printRunSummary(cmd, res)
	return nil
}

func printRunSummary(cmd *cobra.Command, res pipeline.Result) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(res.Sources))
	for _, s := range res.Sources {
		status := "ok"
		if s.Err != nil {
			status = s.Err.Error()
		}
		rows = append(rows, []string{s.Source, strconv.Itoa(s.Records), status})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Source", "Records", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	}

	stages := [][]string{
		{"fetched", strconv.Itoa(res.Fetched)},
		{"malformed", strconv.Itoa(res.Malformed)},
		{"too old", strconv.Itoa(res.Stale)},
		{"off topic", strconv.Itoa(res.Irrelevant)},
		{"duplicates", strconv.Itoa(res.Duplicates)},
		{"over candidate cap", strconv.Itoa(res.Trimmed)},
		{"in digest", strconv.Itoa(len(res.Papers))},
		{"AI enriched", fmt.Sprintf("%d of %d selected", res.Enrichment.Enriched, res.Enrichment.Selected)},
	}
	fmt.Fprintln(out, renderTable([]string{"Stage", "Papers"}, stages, []columnAlignment{alignLeft, alignRight}))

	if res.UsedDemo {
		fmt.Fprintln(out, "No source returned usable records; the digest uses the demo dataset.")
	}
	fmt.Fprintf(out, "Snapshot: %s\nDigest:   %s\n", res.SnapshotPath, res.Report.ReportPath)
}
