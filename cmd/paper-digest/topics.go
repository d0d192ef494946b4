// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic taxonomy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := digestConfig()
		if err != nil {
			return err
		}
		tax, err := topicTaxonomy(cfg)
		if err != nil {
			return err
		}

		showAll, _ := cmd.Flags().GetBool("keywords")
		rows := make([][]string, 0, tax.Len())
		for _, t := range tax.Topics() {
			kws := t.Keywords
			if !showAll && len(kws) > 4 {
				kws = append(kws[:4:4], "…")
			}
			rows = append(rows, []string{t.Name, tax.Label(t.Name), strconv.Itoa(len(t.Keywords)), strings.Join(kws, ", ")})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Topic", "Label", "Keywords", "Examples"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
		return nil
	},
}

func init() {
	topicsCmd.Flags().Bool("keywords", false, "print every keyword")
	rootCmd.AddCommand(topicsCmd)
}
