package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"
)

var (
	// ErrInvalidSampleID is returned for identifiers that are unsafe as file names.
	ErrInvalidSampleID = errors.New("invalid sample id")
	// ErrResultNotFound is returned when no result is stored for a sample.
	ErrResultNotFound = errors.New("result not found")
)

// ValidateSampleID accepts letters, digits, underscores and hyphens.
func ValidateSampleID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidSampleID)
	}
	for i, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidSampleID, r, i)
		}
	}
	return nil
}

// Sink persists documents as JSON files keyed by sample id.
type Sink struct {
	dir string
}

// NewSink creates a sink writing into dir.
func NewSink(dir string) *Sink {
	return &Sink{dir: dir}
}

// Dir returns the directory results are written to.
func (s *Sink) Dir() string {
	return s.dir
}

// Path returns the file path for a sample's result.
func (s *Sink) Path(sampleID string) string {
	return filepath.Join(s.dir, sampleID+"_lab_results.json")
}

// Write stores doc, replacing any earlier result for the same sample.
// The file is written to a temp name and renamed into place.
func (s *Sink) Write(doc Document) (string, error) {
	if err := ValidateSampleID(doc.SampleID); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".result-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	path := s.Path(doc.SampleID)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store result: %w", err)
	}
	return path, nil
}

// Read loads the stored result for a sample.
func (s *Sink) Read(sampleID string) (Document, error) {
	if err := ValidateSampleID(sampleID); err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(s.Path(sampleID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrResultNotFound, sampleID)
		}
		return Document{}, fmt.Errorf("failed to read result: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode stored result %s: %w", sampleID, err)
	}
	return doc, nil
}
