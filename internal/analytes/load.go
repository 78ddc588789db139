package analytes

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed default_table.yaml
var defaultTable []byte

//go:embed table.schema.json
var tableSchema []byte

// tableFile is the on-disk table format.
type tableFile struct {
	Analytes []Entry `json:"analytes" yaml:"analytes"`
}

// Default returns the built-in reference table.
func Default() (*Table, error) {
	t, err := Parse(defaultTable)
	if err != nil {
		return nil, fmt.Errorf("built-in analyte table: %w", err)
	}
	return t, nil
}

// LoadFile reads a table from a YAML or JSON file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyte table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("analyte table %s: %w", path, err)
	}
	return t, nil
}

// Load returns the table at path, or the built-in table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a table document. JSON is accepted as a
// subset of YAML.
func Parse(data []byte) (*Table, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON value types.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert table: %w", err)
	}
	var doc any
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert table: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var file tableFile
	if err := json.Unmarshal(asJSON, &file); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}
	return NewTable(file.Analytes)
}

func validate(doc any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("table.schema.json", bytes.NewReader(tableSchema)); err != nil {
		return fmt.Errorf("failed to load table schema: %w", err)
	}
	schema, err := compiler.Compile("table.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile table schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("table does not match schema: %w", err)
	}
	return nil
}
