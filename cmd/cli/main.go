// Command cli scores a local season export and optionally compares two
// sides, without a server or database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"puckval/adapters/tabular"
	"puckval/domain/compare"
	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/domain/scoring"
)

var (
	filePath   = flag.String("file", "data/skaters_season.csv", "Season export (CSV or xlsx)")
	catsCSV    = flag.String("cats", "G,A,PPP,SOG,SHP,HITS,BLKS,FW", "Comma-separated categories")
	teams      = flag.Int("teams", 12, "League team count")
	slots      = flag.Int("slots", 15, "Roster slots per team")
	buffer     = flag.Float64("buffer", 0.30, "Depth buffer fraction")
	percentile = flag.Float64("percentile", 15, "Replacement percentile (0-100)")
	policy     = flag.String("policy", "usage", "Pool policy: usage, rank, unrostered")
	rankStat   = flag.String("rank_stat", "", "Primary stat for the rank policy")
	missing    = flag.String("missing", "omit", "Missing value policy: omit or zero")
	top        = flag.Int("top", 25, "Rows to print")
	sideA      = flag.String("a", "", "Comma-separated side A player ids (enables comparison)")
	sideB      = flag.String("b", "", "Comma-separated side B player ids")
)

func main() {
	flag.Parse()
	if *teams <= 0 || *slots <= 0 {
		die("teams and slots must be positive")
	}
	if *buffer < 0 {
		die("buffer must not be negative")
	}
	if *percentile < 0 || *percentile > 100 {
		die("percentile must be in [0, 100]")
	}

	table, err := tabular.NewFileSource(*filePath).FetchTable(context.Background())
	if err != nil {
		die("load %s: %v", *filePath, err)
	}

	cfg := scoring.Config{
		Categories: player.NewCategorySet(strings.Split(*catsCSV, ",")...).Intersect(table),
		Policy: scoring.PoolPolicy{
			Kind:         scoring.PolicyKind(*policy),
			Teams:        *teams,
			SlotsPerTeam: *slots,
			DepthBuffer:  *buffer,
			RankStat:     *rankStat,
		},
		Missing:               scoring.MissingValuePolicy(*missing),
		ReplacementPercentile: *percentile,
	}

	scores, err := scoring.ComputeScores(table, cfg)
	if err != nil {
		die("score: %v", err)
	}

	if *sideA != "" || *sideB != "" {
		runComparison(table, scores, cfg.Categories)
		return
	}
	printRanked(table, scores, cfg.Categories)
}

func printRanked(table *player.StatTable, scores scoring.ScoreSet, cats player.CategorySet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "#\tPLAYER\tPOS\tTOTAL\t%s\n", strings.Join(cats, "\t"))
	for i, s := range scores.Ranked() {
		if i >= *top {
			break
		}
		row, _ := table.ByID(s.PlayerID)
		cells := make([]string, 0, len(cats))
		for _, cat := range cats {
			cells = append(cells, fmt.Sprintf("%.2f", s.PerCategory[cat]))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n", i+1, row.Name, row.Position, s.Total, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func runComparison(table *player.StatTable, scores scoring.ScoreSet, cats player.CategorySet) {
	result, err := compare.Compare(table, scores, compare.Request{
		SideA:      ids(*sideA),
		SideB:      ids(*sideB),
		Categories: cats,
		Mode:       compare.ModeStandardized,
	})
	if err != nil {
		die("compare: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSIDE A\tSIDE B")
	for _, cat := range cats {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", cat, result.SideA.Aggregates[cat], result.SideB.Aggregates[cat])
	}
	w.Flush()

	fmt.Printf("\nwins: A=%d B=%d ties=%d -> %s\n",
		result.SideA.CategoryWins, result.SideB.CategoryWins, result.Ties, result.Outcome)
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}

func ids(raw string) []core.PlayerID {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]core.PlayerID, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, core.PlayerID(trimmed))
		}
	}
	return out
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
