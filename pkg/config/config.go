package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application
type Config struct {
	DataDir       string    `koanf:"data"`
	GenesFile     string    `koanf:"genes"`
	ChemicalsFile string    `koanf:"chemicals"`
	ExportFile    string    `koanf:"export"`
	Delimiter     string    `koanf:"delimiter"`
	WebMode       bool      `koanf:"web"`
	Port          int       `koanf:"port"`
	Watch         bool      `koanf:"watch"`
	Fetch         bool      `koanf:"fetch"`
	URLs          URLConfig `koanf:"urls"`
	Verbosity     string    `koanf:"verbosity"`
	VerboseCnt    int       `koanf:"verbose"`
}

// URLConfig holds the archive locations used by the --fetch flow. The
// defaults point at the providers' current public RDF dumps; override them
// in pathway-analyzer.toml to pin a dated release.
type URLConfig struct {
	WikiPathways string `koanf:"wikipathways"`
	Reactome     string `koanf:"reactome"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"data":      "data",
		"genes":     "",
		"chemicals": "",
		"export":    "",
		"delimiter": ",",
		"web":       false,
		"port":      8080,
		"watch":     false,
		"fetch":     false,
		"urls": map[string]interface{}{
			"wikipathways": "https://data.wikipathways.org/current/rdf/wikipathways-rdf-wp.zip",
			"reactome":     "https://reactome.org/download/current/ReactomeRDF.tar.bz2",
		},
		"verbosity": "",
		"verbose":   0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - pathway-analyzer.toml
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider("pathway-analyzer.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: PATHWAY_ANALYZER_ (e.g., PATHWAY_ANALYZER_PORT=9090)
	if err := k.Load(env.Provider("PATHWAY_ANALYZER_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "PATHWAY_ANALYZER_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
