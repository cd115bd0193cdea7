package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/stats"
)

// PrintAnalysisReport prints a nicely formatted analysis report with colors
func PrintAnalysisReport(dataDir string, result *analyze.Result) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Println("Pathway Analyzer - Statistics Report")
	bold.Println("====================================")
	fmt.Printf("Folder: %s\n", dataDir)
	fmt.Printf("Analyzed: %d pathway(s) in %s\n", len(result.Pathways), result.Elapsed.Round(time.Millisecond))

	if len(result.Errors) == 0 {
		green.Printf("Failed files: 0\n")
	} else {
		yellow.Printf("Failed files: %d\n", len(result.Errors))
	}
	fmt.Println()

	// Graph totals
	var nodes, edges, loops int
	for _, pr := range result.Pathways {
		nodes += pr.Graph.NodeCount()
		edges += pr.Graph.EdgeCount()
		loops += len(pr.Loops)
	}
	bold.Println("GRAPHS:")
	fmt.Printf("  Nodes: %d\n", nodes)
	fmt.Printf("  Edges: %d\n", edges)
	fmt.Printf("  Feedback loops: %d\n", loops)
	fmt.Println()

	// Resolution outcomes
	o := result.Outcomes
	bold.Println("IDENTIFIER RESOLUTION:")
	green.Printf("  Resolved: %d\n", o.Resolved)
	fmt.Printf("  Kept as-is: %d\n", o.Kept)
	if o.Ambiguous > 0 {
		yellow.Printf("  Ambiguous: %d\n", o.Ambiguous)
	}
	if o.CatchAll > 0 {
		yellow.Printf("  Catch-all: %d\n", o.CatchAll)
	}
	if o.Failed > 0 {
		red.Printf("  Failed: %d\n", o.Failed)
	}
	fmt.Println()

	// Most frequent semantic types across the batch
	printTopTypes(bold, cyan, "ENTITY TYPES:", result.Global.Categories[stats.CategorySourceNodes])
	printTopTypes(bold, cyan, "INTERACTION TYPES:", result.Global.Categories[stats.CategorySourceEdges])

	// Skipped files list
	if len(result.Errors) > 0 {
		red.Println("SKIPPED FILES:")
		for _, fe := range result.Errors {
			yellow.Printf("  %s\n", fe.Path)
			fmt.Printf("    %s\n", fe.Message)
		}
		fmt.Println()
	}

	// Summary with color based on how much of the input survived
	percentage := 100.0
	if o.Total() > 0 {
		percentage = float64(o.Total()-o.Failed) / float64(o.Total()) * 100.0
	}

	summaryColor := green
	if percentage < 100.0 {
		summaryColor = yellow
	}
	if percentage < 80.0 {
		summaryColor = red
	}

	summaryColor.Printf("Summary: %.0f%% of entities imported (%d/%d)\n", percentage, o.Total()-o.Failed, o.Total())

	// Success check mark if nothing was lost
	if percentage == 100.0 && len(result.Errors) == 0 {
		green.Println("✓ Every file parsed and every entity made it into a graph!")
	}
}

func printTopTypes(header, item *color.Color, title string, counts stats.TypeCounts) {
	if len(counts) == 0 {
		return
	}
	header.Println(title)
	for _, tc := range topTypes(counts, 5) {
		item.Printf("  %s", tc.name)
		fmt.Printf(": %d\n", tc.count)
	}
	fmt.Println()
}

type typeCount struct {
	name  string
	count int
}

// topTypes returns up to n types ordered by descending count, name as the
// tie break.
func topTypes(counts stats.TypeCounts, n int) []typeCount {
	out := make([]typeCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, typeCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
