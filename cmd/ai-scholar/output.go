// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// writeResult renders a search result as a table, JSON, or YAML.
func writeResult(w io.Writer, result types.SearchResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	default:
		return writeTable(w, result)
	}
}

func writeTable(w io.Writer, result types.SearchResult) error {
	fmt.Fprintf(w, "%d papers (%d unique found, backends: %s, mode: %s, %dms)\n\n",
		len(result.Papers), result.TotalFound,
		strings.Join(result.BackendsUsed, ", "), result.RankingMode,
		result.ProcessingTimeMs)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tYEAR\tCITES\tSOURCE\tTITLE")
	for i, p := range result.Papers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, yearString(p.Year), citationString(p), p.Source, truncate(p.Title, 70))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for i, p := range result.Papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		if p.Authors != "" {
			fmt.Fprintf(w, "   %s\n", p.Authors)
		}
		if p.URL != "" {
			fmt.Fprintf(w, "   %s\n", p.URL)
		}
		fmt.Fprintf(w, "   %s\n\n", p.Explanation)
	}
	return nil
}

func yearString(year int) string {
	if year <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}

func citationString(p types.Paper) string {
	if p.Citations == types.CitationNA {
		return "-"
	}
	return fmt.Sprintf("%d", p.Citations)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
