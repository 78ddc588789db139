package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-labextract")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-labextract" {
			t.Errorf("expected path /tmp/test-labextract, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-labextract")

	t.Run("ResultsPath", func(t *testing.T) {
		expected := "/tmp/test-labextract/results"
		if dir.ResultsPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ResultsPath())
		}
	})

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-labextract/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "labextract")
	dir, _ := New(root)

	if dir.Exists() {
		t.Fatal("expected directory to not exist yet")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !dir.Exists() {
		t.Error("expected home directory to exist")
	}
	if info, err := os.Stat(dir.ResultsPath()); err != nil || !info.IsDir() {
		t.Errorf("expected results directory, got err %v", err)
	}
	if dir.ConfigExists() {
		t.Error("expected no config file")
	}

	if err := os.WriteFile(dir.ConfigPath(), []byte("server: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !dir.ConfigExists() {
		t.Error("expected config file to exist")
	}
}
