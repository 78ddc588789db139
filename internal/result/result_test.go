package result

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleDoc() Document {
	return Document{
		SampleID: "83732",
		Pairs: []Pair{
			{Code: "LBXGLU", Value: "95"},
			{Code: "LBXSNASI", Value: ""},
		},
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleDoc())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[["SEQN","83732"],["LBXGLU","95"],["LBXSNASI",""]]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	t.Run("reads array form", func(t *testing.T) {
		var doc Document
		if err := json.Unmarshal([]byte(`[["SEQN","1"],["A","x"]]`), &doc); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if doc.SampleID != "1" || len(doc.Pairs) != 1 || doc.Pairs[0] != (Pair{Code: "A", Value: "x"}) {
			t.Errorf("unexpected document: %#v", doc)
		}
	})

	t.Run("requires leading identifier", func(t *testing.T) {
		var doc Document
		if err := json.Unmarshal([]byte(`[["A","x"]]`), &doc); err == nil {
			t.Error("expected error without SEQN pair")
		}
	})

	t.Run("rejects malformed pairs", func(t *testing.T) {
		var doc Document
		if err := json.Unmarshal([]byte(`[["SEQN","1","extra"]]`), &doc); err == nil {
			t.Error("expected error for 3-element pair")
		}
	})
}

func TestDocument_Accessors(t *testing.T) {
	doc := sampleDoc()
	if doc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Len())
	}
	if v, ok := doc.Value("LBXGLU"); !ok || v != "95" {
		t.Errorf("Value(LBXGLU) = %q, %v", v, ok)
	}
	if _, ok := doc.Value("MISSING"); ok {
		t.Error("Value(MISSING) should not be found")
	}
}

func TestDocument_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleDoc())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var got [][]string
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	want := [][]string{{"SEQN", "83732"}, {"LBXGLU", "95"}, {"LBXSNASI", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("yaml round trip = %v, want %v", got, want)
	}
}

func TestValidateSampleID(t *testing.T) {
	valid := []string{"83732", "sample_1", "A-12"}
	for _, id := range valid {
		if err := ValidateSampleID(id); err != nil {
			t.Errorf("ValidateSampleID(%q) error = %v", id, err)
		}
	}
	invalid := []string{"", "../etc", "a b", "x/y"}
	for _, id := range invalid {
		if err := ValidateSampleID(id); !errors.Is(err, ErrInvalidSampleID) {
			t.Errorf("ValidateSampleID(%q) = %v, want ErrInvalidSampleID", id, err)
		}
	}
}

func TestSink_WriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	sink := NewSink(dir)

	path, err := sink.Write(sampleDoc())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != filepath.Join(dir, "83732_lab_results.json") {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("result file missing: %v", err)
	}

	got, err := sink.Read("83732")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleDoc()) {
		t.Errorf("Read() = %#v, want %#v", got, sampleDoc())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the result file, found %d entries", len(entries))
	}
}

func TestSink_Errors(t *testing.T) {
	sink := NewSink(t.TempDir())

	if _, err := sink.Read("nobody"); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("Read(nobody) = %v, want ErrResultNotFound", err)
	}
	if _, err := sink.Write(Document{SampleID: "../x"}); !errors.Is(err, ErrInvalidSampleID) {
		t.Errorf("Write(../x) = %v, want ErrInvalidSampleID", err)
	}
}

func TestDocument_Cells(t *testing.T) {
	doc := Document{SampleID: "7", Pairs: []Pair{{Code: "LBXGLU", Value: "95"}}}
	cells := doc.Cells()
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0][0] != SampleIDCode || cells[0][1] != "7" || cells[1][0] != "LBXGLU" || cells[1][1] != "95" {
		t.Errorf("unexpected cells %v", cells)
	}
}
