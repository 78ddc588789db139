package config

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// Entry is a single configuration key with its value and description.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// They seed viper defaults and document every supported key.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// ===================
		// Server
		// ===================
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Address the HTTP server binds to",
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Port the HTTP server listens on",
		},

		// ===================
		// Layout
		// ===================
		{
			Key:         "layout.row_tolerance",
			Value:       d.Layout.RowTolerance,
			Description: "Maximum vertical distance between token centers on one row",
		},
		{
			Key:         "layout.sort_tokens",
			Value:       d.Layout.SortTokens,
			Description: "Sort tokens top-to-bottom, left-to-right before clustering",
		},

		// ===================
		// Repair
		// ===================
		{
			Key:         "repair.merge_sub_results_on_empty_value",
			Value:       d.Repair.MergeSubResultsOnEmptyValue,
			Description: "Merge IgG/IgM style sub-result rows into a preceding record with no value",
		},
		{
			Key:         "repair.disabled_rules",
			Value:       d.Repair.DisabledRules,
			Description: "Repair rules to skip, by name",
		},

		// ===================
		// Analytes
		// ===================
		{
			Key:         "analytes.table_path",
			Value:       d.Analytes.TablePath,
			Description: "YAML or JSON analyte table; empty uses the built-in table",
		},

		// ===================
		// Output
		// ===================
		{
			Key:         "output.persist",
			Value:       d.Output.Persist,
			Description: "Write each result to {home}/results/{seqn}_lab_results.json",
		},

		// ===================
		// Defaults
		// ===================
		{
			Key:         "defaults.max_workers",
			Value:       d.Defaults.MaxWorkers,
			Description: "Maximum documents processed concurrently in a batch",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ValidateKey checks that key is well formed and known.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	if GetDefault(key) == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return nil
}
