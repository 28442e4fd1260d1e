// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// rankingPromptTmpl instructs the model to explain every paper in the
// batch and answer with a bare JSON array.
var rankingPromptTmpl = template.Must(template.New("ranking").Parse(`You are processing batch {{.Batch}} of {{.TotalBatches}} for the query: '{{.Query}}'
Total papers across all batches: {{.TotalPapers}}. This batch contains {{.BatchSize}} papers.

IMPORTANT: Provide explanations for ALL {{.BatchSize}} papers in this batch, not just the top ones.
Consider both citation count ('c' field) and relevance to the query.
For each paper, provide a detailed explanation (2-3 sentences) of why it is relevant to the query.

Return a JSON array with ALL {{.BatchSize}} papers, each having:
- title: exact title from input (use 't' field value)
- authors: exact authors from input (use 'a' field value)
- citations: citation count from input (use 'c' field value)
- explanation: detailed 2-3 sentence explanation of relevance

Papers to analyze:
{{.Papers}}

Return ONLY a JSON array with ALL {{.BatchSize}} papers:`))

// paperSummary is the compact per-paper encoding sent in prompts. Short
// keys keep token usage down on large batches.
type paperSummary struct {
	Title     string `json:"t"`
	Authors   string `json:"a"`
	Citations int    `json:"c"`
}

// renderRankingPrompt builds the prompt for one batch.
func renderRankingPrompt(query string, batch types.RankingBatch, totalPapers int) (string, error) {
	summaries := make([]paperSummary, 0, len(batch.Papers))
	for _, p := range batch.Papers {
		summaries = append(summaries, paperSummary{
			Title:     p.Title,
			Authors:   p.Authors,
			Citations: p.CitationsOrZero(),
		})
	}
	papersJSON, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("marshaling paper summaries: %w", err)
	}

	var buf bytes.Buffer
	err = rankingPromptTmpl.Execute(&buf, struct {
		Batch        int
		TotalBatches int
		TotalPapers  int
		BatchSize    int
		Query        string
		Papers       string
	}{
		Batch:        batch.Index,
		TotalBatches: batch.Total,
		TotalPapers:  totalPapers,
		BatchSize:    len(batch.Papers),
		Query:        query,
		Papers:       string(papersJSON),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
