package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat is how CLI commands render their results.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTSV renders records and row sets as tab-separated cells.
	OutputFormatTSV OutputFormat = "tsv"
)

// Tabular is implemented by values with a natural cell layout, such as an
// analyte record rendered as code/value lines.
type Tabular interface {
	Cells() [][]string
}

var currentFormat = OutputFormatYAML

// SetOutputFormat selects the format for Output. Unknown names fall back
// to YAML.
func SetOutputFormat(format string) {
	switch f := OutputFormat(strings.ToLower(format)); f {
	case OutputFormatJSON, OutputFormatTSV:
		currentFormat = f
	default:
		currentFormat = OutputFormatYAML
	}
}

// GetOutputFormat returns the format selected by SetOutputFormat.
func GetOutputFormat() OutputFormat {
	return currentFormat
}

// Output writes data to stdout in the selected format.
func Output(data any) error {
	return OutputTo(os.Stdout, currentFormat, data)
}

// OutputTo writes data to w in format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	case OutputFormatTSV:
		return writeTSV(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// writeTSV handles Tabular values, cell grids and line lists.
func writeTSV(w io.Writer, data any) error {
	var cells [][]string
	switch v := data.(type) {
	case Tabular:
		cells = v.Cells()
	case [][]string:
		cells = v
	case []string:
		cells = make([][]string, len(v))
		for i, line := range v {
			cells[i] = []string{line}
		}
	default:
		return fmt.Errorf("%T cannot be written as tsv", data)
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.WriteAll(cells); err != nil {
		return fmt.Errorf("failed to write tsv: %w", err)
	}
	return nil
}

// OutputToFile writes data to path, choosing the format from the
// extension: .json, .tsv, otherwise YAML.
func OutputToFile(data any, path string) error {
	format := OutputFormatYAML
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = OutputFormatJSON
	case ".tsv":
		format = OutputFormatTSV
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := OutputTo(f, format, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
