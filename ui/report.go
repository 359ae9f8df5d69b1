package ui

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"puckval/domain/compare"
	"puckval/domain/core"
	"puckval/domain/player"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// handleCompareReport renders a comparison as an HTML report. Inputs
// mirror POST /api/compare but arrive as query parameters so the report
// is linkable.
func (s *Server) handleCompareReport(c *gin.Context) {
	body := compareBody{
		SideA:      splitList(c.Query("side_a")),
		SideB:      splitList(c.Query("side_b")),
		Categories: splitList(c.Query("cats")),
		Mode:       c.Query("mode"),
		Policy:     c.Query("policy"),
		Missing:    c.Query("missing"),
		RankStat:   c.Query("rank_stat"),
	}

	req, err := s.buildCompareRequest(body)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := s.service.Compare(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	table, err := s.service.CurrentTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	md := renderComparisonMarkdown(result, table)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	c.Data(http.StatusOK, "text/html; charset=utf-8", markdown.ToHTML([]byte(md), p, renderer))
}

// renderComparisonMarkdown formats a comparison result as a markdown
// document: side rosters, a per-category table, and the verdict.
func renderComparisonMarkdown(result *compare.Result, table *player.StatTable) string {
	var b strings.Builder

	b.WriteString("# Player Comparison\n\n")
	b.WriteString("Value vs replacement: 0 = streamer level.\n\n")

	b.WriteString("## Sides\n\n")
	b.WriteString(fmt.Sprintf("- **Side A**: %s\n", sideNames(result.SideA.Players, table)))
	b.WriteString(fmt.Sprintf("- **Side B**: %s\n\n", sideNames(result.SideB.Players, table)))

	b.WriteString("## Categories\n\n")
	b.WriteString("| Category | Side A | Side B | A pct | B pct | Edge |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, cat := range sortedCategories(result) {
		edge := "tie"
		switch {
		case result.SideA.Aggregates[cat] > result.SideB.Aggregates[cat]:
			edge = "A"
		case result.SideB.Aggregates[cat] > result.SideA.Aggregates[cat]:
			edge = "B"
		}
		b.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.1f | %.1f | %s |\n",
			cat,
			result.SideA.Aggregates[cat], result.SideB.Aggregates[cat],
			result.SideA.Percentiles[cat], result.SideB.Percentiles[cat],
			edge))
	}

	b.WriteString("\n## Verdict\n\n")
	b.WriteString(fmt.Sprintf("Category wins: A %d, B %d, ties %d.\n\n",
		result.SideA.CategoryWins, result.SideB.CategoryWins, result.Ties))
	switch result.Outcome {
	case compare.OutcomeSideA:
		b.WriteString("**Side A wins.**\n")
	case compare.OutcomeSideB:
		b.WriteString("**Side B wins.**\n")
	default:
		b.WriteString("**Tie.**\n")
	}

	for _, w := range result.Warnings {
		b.WriteString(fmt.Sprintf("\n> %s\n", w))
	}
	return b.String()
}

// sortedCategories yields category keys in a stable order across both
// sides' aggregate maps.
func sortedCategories(result *compare.Result) []string {
	seen := make(map[string]bool, len(result.SideA.Aggregates))
	keys := make([]string, 0, len(result.SideA.Aggregates))
	for cat := range result.SideA.Aggregates {
		if !seen[cat] {
			seen[cat] = true
			keys = append(keys, cat)
		}
	}
	for cat := range result.SideB.Aggregates {
		if !seen[cat] {
			seen[cat] = true
			keys = append(keys, cat)
		}
	}
	sort.Strings(keys)
	return keys
}

func sideNames(ids []core.PlayerID, table *player.StatTable) string {
	if len(ids) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if row, ok := table.ByID(id); ok && row.Name != "" {
			names = append(names, row.Name)
			continue
		}
		names = append(names, id.String())
	}
	return strings.Join(names, ", ")
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
