package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/config"
	"github.com/openpathway/pathway-analyzer/pkg/export"
	"github.com/openpathway/pathway-analyzer/pkg/fetch"
	"github.com/openpathway/pathway-analyzer/pkg/logging"
	"github.com/openpathway/pathway-analyzer/pkg/lookup"
	"github.com/openpathway/pathway-analyzer/pkg/metrics"
	"github.com/openpathway/pathway-analyzer/pkg/report"
	"github.com/openpathway/pathway-analyzer/pkg/resolve"
	"github.com/openpathway/pathway-analyzer/pkg/watcher"
	"github.com/openpathway/pathway-analyzer/pkg/web"
)

func main() {
	// Flags mirror the config keys; config.Load layers them over the TOML
	// file and PATHWAY_ANALYZER_ environment variables.
	flags := pflag.NewFlagSet("pathway-analyzer", pflag.ExitOnError)
	flags.String("data", "data", "Folder holding the pathway files to analyze")
	flags.String("genes", "", "HGNC gene table (TSV) for identifier resolution")
	flags.String("chemicals", "", "ChEBI chemical table (TSV) for identifier resolution")
	flags.String("export", "", "Write the per-pathway statistics table to this CSV file")
	flags.String("delimiter", ",", "Cell delimiter for the exported table")
	flags.Bool("web", false, "Serve the web UI and API after the analysis")
	flags.Int("port", 8080, "Port for the web server (only used with --web)")
	flags.Bool("watch", false, "Keep watching the data folder and re-run on changes")
	flags.Bool("fetch", false, "Download the provider archives into the data folder first")
	flags.String("verbosity", "", "Log level: trace, debug, info, warn or error")
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.SetLevel(logLevel(cfg))

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	if cfg.Fetch {
		if err := fetchArchives(ctx, cfg); err != nil {
			return err
		}
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	sources := analyze.DefaultSources()
	runner := analyze.NewRunner(resolver, sources, metrics.DefaultRegistry())

	result, err := runBatch(ctx, runner, cfg, sources, "initial analysis")
	if err != nil {
		return err
	}

	report.PrintAnalysisReport(cfg.DataDir, result)

	if cfg.ExportFile != "" {
		if err := exportTable(cfg, result); err != nil {
			return err
		}
		fmt.Printf("Statistics table written to %s\n", cfg.ExportFile)
	}

	if !cfg.WebMode && !cfg.Watch {
		return nil
	}

	var srv *web.Server
	if cfg.WebMode {
		srv = web.NewServer(metrics.DefaultRegistry())
		srv.SetResult(result)

		if !cfg.Watch {
			return srv.Start(cfg.Port)
		}
		go func() {
			if err := srv.Start(cfg.Port); err != nil {
				logging.Fatal("web server failed", "error", err)
			}
		}()
	}

	return watchLoop(ctx, cfg, runner, sources, srv)
}

func runBatch(ctx context.Context, runner *analyze.Runner, cfg *config.Config, sources []analyze.Source, reason string) (*analyze.Result, error) {
	paths, err := analyze.ListPathwayFiles(cfg.DataDir, sources)
	if err != nil {
		return nil, fmt.Errorf("listing pathway files: %w", err)
	}
	return runner.Run(ctx, paths, analyze.Options{Reason: reason, Progress: true})
}

// buildResolver loads the authority tables named in the config. Without
// tables the resolver still handles ChEBI, Reactome and ec-code entities;
// gene lookups come up empty and fall through to the catch-all branch.
func buildResolver(cfg *config.Config) (*resolve.Resolver, error) {
	genes := lookup.NewStatic(nil)
	if cfg.GenesFile != "" {
		loaded, err := lookup.LoadGenesTSV(cfg.GenesFile)
		if err != nil {
			return nil, fmt.Errorf("loading gene table: %w", err)
		}
		genes = loaded
		fmt.Printf("Loaded %d gene symbols from %s\n", genes.Len(), cfg.GenesFile)
	}

	chemicals := lookup.NewStaticChemicals(nil)
	if cfg.ChemicalsFile != "" {
		loaded, err := lookup.LoadChemicalsTSV(cfg.ChemicalsFile)
		if err != nil {
			return nil, fmt.Errorf("loading chemical table: %w", err)
		}
		chemicals = loaded
		fmt.Printf("Loaded %d chemicals from %s\n", chemicals.Len(), cfg.ChemicalsFile)
	}

	return resolve.NewResolver(genes, chemicals), nil
}

// fetchArchives downloads and unpacks the provider dumps into the data
// folder. Archives already on disk are reused.
func fetchArchives(ctx context.Context, cfg *config.Config) error {
	f := fetch.New()

	wpArchive := filepath.Join(cfg.DataDir, "wikipathways-rdf.zip")
	if err := f.Download(ctx, cfg.URLs.WikiPathways, wpArchive, false); err != nil {
		return fmt.Errorf("fetching WikiPathways dump: %w", err)
	}
	if err := fetch.Unzip(wpArchive, cfg.DataDir); err != nil {
		return fmt.Errorf("unpacking WikiPathways dump: %w", err)
	}

	reactomeArchive := filepath.Join(cfg.DataDir, "reactome-rdf.tar.bz2")
	if err := f.Download(ctx, cfg.URLs.Reactome, reactomeArchive, false); err != nil {
		return fmt.Errorf("fetching Reactome dump: %w", err)
	}
	if err := fetch.UntarBz2(reactomeArchive, cfg.DataDir); err != nil {
		return fmt.Errorf("unpacking Reactome dump: %w", err)
	}
	return nil
}

func exportTable(cfg *config.Config, result *analyze.Result) error {
	delimiter := ','
	if cfg.Delimiter != "" {
		delimiter = rune(cfg.Delimiter[0])
	}
	table := export.BuildTable(result.Global.AllPathways)
	return export.WriteCSVFile(cfg.ExportFile, table, delimiter)
}

// watchLoop blocks, re-running the batch whenever pathway files change. With
// a server attached, every re-run refreshes the API views and pushes status
// events to SSE subscribers.
func watchLoop(ctx context.Context, cfg *config.Config, runner *analyze.Runner, sources []analyze.Source, srv *web.Server) error {
	fmt.Printf("Watching %s for changes, press Ctrl-C to stop\n", cfg.DataDir)

	return watcher.Watch(ctx, cfg.DataDir, sources, func(event watcher.ChangeEvent) {
		if srv != nil {
			srv.PublishStatus("analyzing", fmt.Sprintf("%d files changed", len(event.Paths)), 1, 2)
		}

		result, err := runBatch(ctx, runner, cfg, sources, "files changed")
		if err != nil {
			logging.Error("re-analysis failed", "error", err)
			return
		}

		report.PrintAnalysisReport(cfg.DataDir, result)
		if cfg.ExportFile != "" {
			if err := exportTable(cfg, result); err != nil {
				logging.Error("failed to refresh export", "path", cfg.ExportFile, "error", err)
			}
		}
		if srv != nil {
			srv.SetResult(result)
			srv.PublishStatus("ready", "analysis complete", 2, 2)
		}
	})
}

// logLevel maps the config onto a slog level. An explicit verbosity name
// wins over the -v count.
func logLevel(cfg *config.Config) slog.Level {
	switch cfg.Verbosity {
	case "trace":
		return slog.LevelDebug - 4
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	switch {
	case cfg.VerboseCnt >= 2:
		return slog.LevelDebug - 4
	case cfg.VerboseCnt == 1:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
