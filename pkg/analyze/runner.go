package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/openpathway/pathway-analyzer/pkg/cycles"
	"github.com/openpathway/pathway-analyzer/pkg/graph"
	"github.com/openpathway/pathway-analyzer/pkg/logging"
	"github.com/openpathway/pathway-analyzer/pkg/metrics"
	"github.com/openpathway/pathway-analyzer/pkg/model"
	"github.com/openpathway/pathway-analyzer/pkg/resolve"
	"github.com/openpathway/pathway-analyzer/pkg/stats"
)

// Runner orchestrates batch analysis. Each file is fully processed before
// the next one starts: parse, resolve entities, build the graph, roll the
// statistics into the global summary.
type Runner struct {
	resolver *resolve.Resolver
	sources  []Source
	metrics  *metrics.Registry
	mu       sync.Mutex // prevents concurrent runs
	log      *slog.Logger
}

// Options configures one analysis run.
type Options struct {
	Reason   string // e.g. "initial analysis", "files changed"
	Progress bool   // render a terminal progress bar
}

// FileError records one input file the runner had to skip.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// PathwayResult is the outcome for one successfully processed file.
type PathwayResult struct {
	Path   string                  `json:"path"`
	Source string                  `json:"source"`
	Info   model.PathwayInfo       `json:"info"`
	Graph  *model.PathwayGraph     `json:"graph"`
	Loops  []cycles.FeedbackLoop   `json:"loops"`
	Stats  stats.PathwayStatistics `json:"stats"`

	// Entities that failed resolution and interactions that lost an
	// endpoint to such a failure.
	SkippedEntities     int `json:"skippedEntities"`
	SkippedInteractions int `json:"skippedInteractions"`
}

// Result is the outcome of a whole run.
type Result struct {
	Pathways []*PathwayResult `json:"pathways"`
	Global   *stats.Global    `json:"global"`
	Outcomes resolve.Outcomes `json:"outcomes"`
	Errors   []FileError      `json:"errors"`
	Elapsed  time.Duration    `json:"elapsed"`
}

// NewRunner wires a runner. A nil metrics registry falls back to the
// process-wide one.
func NewRunner(resolver *resolve.Resolver, sources []Source, reg *metrics.Registry) *Runner {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &Runner{
		resolver: resolver,
		sources:  sources,
		metrics:  reg,
		log:      logging.New("analyze"),
	}
}

// Run processes the given files in order. Files that cannot be parsed are
// reported in the result and do not abort the batch; the error return is
// reserved for cancellation.
func (r *Runner) Run(ctx context.Context, paths []string, opts Options) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := time.Now()
	r.log.Info("starting analysis", "files", len(paths), "reason", opts.Reason)

	outcomesBefore := r.resolver.Outcomes()
	result := &Result{Global: stats.NewGlobal()}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(paths)), "analyzing")
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr, err := r.processFile(path)
		if bar != nil {
			bar.Add(1)
		}
		if err != nil {
			r.log.Warn("skipping file", "path", path, "error", err)
			result.Errors = append(result.Errors, FileError{Path: path, Message: err.Error()})
			r.metrics.RecordFile(sourceLabel(path, r.sources), "error")
			continue
		}

		result.Pathways = append(result.Pathways, pr)
		result.Global.Add(pr.Info.Name(), pr.Stats)
		r.metrics.RecordFile(pr.Source, "ok")
	}

	result.Outcomes = diffOutcomes(outcomesBefore, r.resolver.Outcomes())
	result.Elapsed = time.Since(started)
	r.publishMetrics(result)

	r.log.Info("analysis complete",
		"pathways", len(result.Pathways),
		"errors", len(result.Errors),
		"entities", result.Outcomes.Total(),
		"elapsed", result.Elapsed)
	return result, nil
}

func (r *Runner) processFile(path string) (*PathwayResult, error) {
	source, ok := DetectSource(path, r.sources)
	if !ok {
		return nil, fmt.Errorf("no source recognizes %s", path)
	}

	doc, err := source.Parse(path)
	if err != nil {
		return nil, err
	}

	pr := &PathwayResult{Path: path, Source: source.Name(), Info: doc.Info}

	// Resolve nodes in sorted key order so lookup diagnostics and ambiguity
	// tallies are reproducible run to run.
	keys := make([]string, 0, len(doc.Nodes))
	for key := range doc.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	canonical := make(map[string]string, len(doc.Nodes))
	nodes := make(map[string]model.Record, len(doc.Nodes))
	for _, key := range keys {
		resolved, err := r.resolver.Resolve(doc.Nodes[key])
		if err != nil {
			r.log.Warn("skipping entity", "path", path, "entity", key, "error", err)
			pr.SkippedEntities++
			continue
		}

		gk := graphKey(resolved)
		canonical[key] = gk
		if _, seen := nodes[gk]; !seen {
			nodes[gk] = nodeRecord(resolved)
		}
	}

	var interactions []model.Interaction
	for _, in := range doc.Interactions {
		subject, sok := canonical[in.Subject]
		object, ook := canonical[in.Object]
		if !sok || !ook {
			pr.SkippedInteractions++
			continue
		}
		interactions = append(interactions, model.Interaction{
			Subject:    subject,
			Object:     object,
			Attributes: in.Attributes,
		})
	}

	pr.Graph = graph.Build(doc.Info, nodes, interactions)
	pr.Stats = stats.NewPathwayStatistics(doc.NodeTypes, doc.InteractionTypes, doc.PrimaryNodeType, doc.PrimaryEdgeType, pr.Graph)
	pr.Loops = cycles.FindFeedbackLoops(graph.Project(pr.Graph))
	return pr, nil
}

func (r *Runner) publishMetrics(result *Result) {
	o := result.Outcomes
	r.metrics.AddResolutions("resolved", o.Resolved)
	r.metrics.AddResolutions("kept", o.Kept)
	r.metrics.AddResolutions("ambiguous", o.Ambiguous)
	r.metrics.AddResolutions("catch_all", o.CatchAll)
	r.metrics.AddResolutions("failed", o.Failed)

	var nodes, edges, loops int
	for _, pr := range result.Pathways {
		nodes += pr.Graph.NodeCount()
		edges += pr.Graph.EdgeCount()
		loops += len(pr.Loops)
	}
	r.metrics.SetGraphTotals(nodes, edges, loops)
	r.metrics.ObserveAnalysis(result.Elapsed)
}

// diffOutcomes isolates the resolutions attributable to one run. The
// resolver tally is cumulative across runs.
func diffOutcomes(before, after resolve.Outcomes) resolve.Outcomes {
	return resolve.Outcomes{
		Resolved:  after.Resolved - before.Resolved,
		Kept:      after.Kept - before.Kept,
		Ambiguous: after.Ambiguous - before.Ambiguous,
		CatchAll:  after.CatchAll - before.CatchAll,
		Failed:    after.Failed - before.Failed,
	}
}

// graphKey derives the canonical node key from a resolved identifier. HGNC
// identifiers already carry their namespace prefix, everything else gets
// one.
func graphKey(resolved model.ResolvedIdentifier) string {
	ns := string(resolved.Namespace)
	if strings.HasPrefix(resolved.Identifier, ns+":") {
		return resolved.Identifier
	}
	return ns + ":" + resolved.Identifier
}

// nodeRecord builds the attribute record stored on a canonical graph node.
func nodeRecord(resolved model.ResolvedIdentifier) model.Record {
	rec := model.Record{}
	rec.Add(model.KeyNamespace, string(resolved.Namespace))
	rec.Add(model.KeyName, resolved.Name)
	rec.Add(model.KeyIdentifier, resolved.Identifier)
	return rec
}

// sourceLabel names the source for metrics even when processing failed.
func sourceLabel(path string, sources []Source) string {
	if source, ok := DetectSource(path, sources); ok {
		return source.Name()
	}
	return "unknown"
}
