// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alextsol/ai-scholar/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `History lists recently completed searches with their query, ranking
mode, providers used, and result count.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if cfg.History.Path == "" {
		return fmt.Errorf("search history is disabled (history.path is empty)")
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMODE\tRESULTS\tBACKENDS\tQUERY")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Mode, e.ResultCount,
			strings.Join(e.Backends, ","), e.Query)
	}
	return tw.Flush()
}
