package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/lookup"
	"github.com/openpathway/pathway-analyzer/pkg/metrics"
	"github.com/openpathway/pathway-analyzer/pkg/model"
	"github.com/openpathway/pathway-analyzer/pkg/resolve"
)

// pathway-dump parses a single pathway file and prints everything the
// pipeline sees: raw records, resolution results, and the final graph.
// Useful for debugging why a file produces the statistics it does.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: pathway-dump <pathway-file>")
	}
	path := os.Args[1]

	sources := analyze.DefaultSources()
	source, ok := analyze.DetectSource(path, sources)
	if !ok {
		log.Fatalf("No source recognizes %s", path)
	}

	fmt.Printf("Parsing %s (source: %s)...\n", path, source.Name())
	doc, err := source.Parse(path)
	if err != nil {
		log.Fatalf("Failed to parse: %v", err)
	}

	fmt.Printf("\nPathway %s %q", doc.Info.Identifier, doc.Info.Title)
	if doc.Info.Organism != "" {
		fmt.Printf(" (%s)", doc.Info.Organism)
	}
	fmt.Println()

	keys := make([]string, 0, len(doc.Nodes))
	for key := range doc.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("\nFound %d entities:\n", len(keys))
	for _, key := range keys {
		fmt.Printf("  %s\n", key)
		rec := doc.Nodes[key]
		for _, field := range rec.Keys() {
			fmt.Printf("    %s: %s\n", field, rec[field].Join("|"))
		}
	}

	fmt.Printf("\nFound %d interactions:\n", len(doc.Interactions))
	for _, in := range doc.Interactions {
		if types := in.Attributes[model.KeyInteractionTypes].Join(","); types != "" {
			fmt.Printf("  %s -> %s [%s]\n", in.Subject, in.Object, types)
		} else {
			fmt.Printf("  %s -> %s\n", in.Subject, in.Object)
		}
	}

	// Resolve record by record with empty authority tables. Gene lookups
	// miss and fall through to later branches, which is exactly the
	// behavior worth inspecting here.
	fmt.Println("\nResolution (no authority tables loaded):")
	resolver := resolve.NewResolver(lookup.NewStatic(nil), lookup.NewStaticChemicals(nil))
	for _, key := range keys {
		resolved, err := resolver.Resolve(doc.Nodes[key])
		if err != nil {
			fmt.Printf("  %s: unresolved (%v)\n", key, err)
			continue
		}
		fmt.Printf("  %s -> %s:%s %q\n", key, resolved.Namespace, resolved.Identifier, resolved.Name)
		for _, c := range resolved.Candidates {
			fmt.Printf("    candidate: %s %s\n", c.Identifier, c.Symbol)
		}
	}

	// Run the full pipeline on just this file for the graph view. A fresh
	// resolver keeps the outcome tally clean of the dump above.
	runner := analyze.NewRunner(
		resolve.NewResolver(lookup.NewStatic(nil), lookup.NewStaticChemicals(nil)),
		sources, metrics.NewRegistry())
	result, err := runner.Run(context.Background(), []string{path}, analyze.Options{Reason: "dump"})
	if err != nil {
		log.Fatalf("Failed to analyze: %v", err)
	}
	if len(result.Pathways) == 0 {
		for _, fe := range result.Errors {
			fmt.Printf("Error: %s\n", fe.Message)
		}
		os.Exit(1)
	}

	pr := result.Pathways[0]
	fmt.Printf("\nGraph: %d nodes, %d edges, %d feedback loops\n",
		pr.Graph.NodeCount(), pr.Graph.EdgeCount(), len(pr.Loops))
	for _, loop := range pr.Loops {
		fmt.Printf("  loop: %s\n", strings.Join(loop.Members, " -> "))
	}
	if pr.SkippedEntities > 0 || pr.SkippedInteractions > 0 {
		fmt.Printf("  skipped %d entities and %d interactions during resolution\n",
			pr.SkippedEntities, pr.SkippedInteractions)
	}

	o := result.Outcomes
	fmt.Printf("\nOutcomes: %d resolved, %d kept, %d ambiguous, %d catch-all, %d failed\n",
		o.Resolved, o.Kept, o.Ambiguous, o.CatchAll, o.Failed)

	// Write the processed pathway to JSON for inspection
	jsonData, err := json.MarshalIndent(pr, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}
	if err := os.WriteFile("pathway.json", jsonData, 0644); err != nil {
		log.Fatalf("Failed to write JSON: %v", err)
	}
	fmt.Println("\nPathway data written to pathway.json")
}
