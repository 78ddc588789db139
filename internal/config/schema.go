package config

import (
	"net"

	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/repair"
)

// Config holds labextract configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
	Layout   LayoutCfg   `mapstructure:"layout" yaml:"layout"`
	Repair   RepairCfg   `mapstructure:"repair" yaml:"repair"`
	Analytes AnalytesCfg `mapstructure:"analytes" yaml:"analytes"`
	Output   OutputCfg   `mapstructure:"output" yaml:"output"`
	Defaults DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// LayoutCfg configures row clustering.
type LayoutCfg struct {
	RowTolerance float64 `mapstructure:"row_tolerance" yaml:"row_tolerance"` // Max vertical distance between tokens of one row
	SortTokens   bool    `mapstructure:"sort_tokens" yaml:"sort_tokens"`     // Sort tokens by (desc y, asc x) before clustering
}

// RepairCfg configures the row repair rules.
type RepairCfg struct {
	MergeSubResultsOnEmptyValue bool     `mapstructure:"merge_sub_results_on_empty_value" yaml:"merge_sub_results_on_empty_value"`
	DisabledRules               []string `mapstructure:"disabled_rules" yaml:"disabled_rules"`
}

// AnalytesCfg selects the analyte reference table.
type AnalytesCfg struct {
	TablePath string `mapstructure:"table_path" yaml:"table_path"` // Empty uses the built-in table (supports ${ENV_VAR} syntax)
}

// OutputCfg controls result persistence.
type OutputCfg struct {
	Persist bool `mapstructure:"persist" yaml:"persist"` // Write results under {home}/results
}

// DefaultsCfg holds processing defaults.
type DefaultsCfg struct {
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"` // Max concurrent documents in a batch
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Layout: LayoutCfg{
			RowTolerance: layout.DefaultTolerance,
		},
		Repair: RepairCfg{
			DisabledRules: []string{},
		},
		Output: OutputCfg{
			Persist: true,
		},
		Defaults: DefaultsCfg{
			MaxWorkers: 4,
		},
	}
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// Clusterer builds a row clusterer from the layout settings.
func (c *Config) Clusterer() *layout.Clusterer {
	cl := layout.NewClusterer()
	if c.Layout.RowTolerance > 0 {
		cl.Tolerance = c.Layout.RowTolerance
	}
	cl.SortTokens = c.Layout.SortTokens
	return cl
}

// RepairOptions converts the repair settings to engine options.
func (c *Config) RepairOptions() repair.Options {
	return repair.Options{
		MergeSubResultsOnEmptyValue: c.Repair.MergeSubResultsOnEmptyValue,
		Disabled:                    c.Repair.DisabledRules,
	}
}

// AnalyteTablePath returns the table path with ${ENV_VAR} references resolved.
func (c *Config) AnalyteTablePath() string {
	return ResolveEnvVars(c.Analytes.TablePath)
}
