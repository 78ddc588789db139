package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/labworks/labextract/internal/repair"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("expected 127.0.0.1:8080, got %s", cfg.Addr())
	}
	if cfg.Layout.RowTolerance != 5 {
		t.Errorf("expected row tolerance 5, got %v", cfg.Layout.RowTolerance)
	}
	if cfg.Repair.MergeSubResultsOnEmptyValue {
		t.Error("expected sub-result merging to be off by default")
	}
	if !cfg.Output.Persist {
		t.Error("expected results to be persisted by default")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_TABLE_DIR", "/srv/tables")

		result := ResolveEnvVars("${TEST_TABLE_DIR}/nhanes.yaml")
		if result != "/srv/tables/nhanes.yaml" {
			t.Errorf("expected /srv/tables/nhanes.yaml, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_Conversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.RowTolerance = 3.5
	cfg.Layout.SortTokens = true
	cfg.Repair.MergeSubResultsOnEmptyValue = true
	cfg.Repair.DisabledRules = []string{repair.RulePunctuationStitch}

	cl := cfg.Clusterer()
	if cl.Tolerance != 3.5 || !cl.SortTokens {
		t.Errorf("unexpected clusterer: %+v", cl)
	}

	opts := cfg.RepairOptions()
	if !opts.MergeSubResultsOnEmptyValue {
		t.Error("expected MergeSubResultsOnEmptyValue")
	}
	if !reflect.DeepEqual(opts.Disabled, []string{repair.RulePunctuationStitch}) {
		t.Errorf("unexpected disabled rules: %v", opts.Disabled)
	}

	cfg.Layout.RowTolerance = 0
	if got := cfg.Clusterer().Tolerance; got != 5 {
		t.Errorf("zero tolerance should fall back to default, got %v", got)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
server:
  port: "9191"
layout:
  row_tolerance: 2.5
repair:
  disabled_rules: [punctuation-stitch]
analytes:
  table_path: /tmp/table.yaml
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Server.Port != "9191" {
			t.Errorf("expected 9191, got %s", cfg.Server.Port)
		}
		if cfg.Server.Host != "127.0.0.1" {
			t.Errorf("expected default host, got %s", cfg.Server.Host)
		}
		if cfg.Layout.RowTolerance != 2.5 {
			t.Errorf("expected 2.5, got %v", cfg.Layout.RowTolerance)
		}
		if !reflect.DeepEqual(cfg.Repair.DisabledRules, []string{"punctuation-stitch"}) {
			t.Errorf("unexpected disabled rules: %v", cfg.Repair.DisabledRules)
		}
		if cfg.AnalyteTablePath() != "/tmp/table.yaml" {
			t.Errorf("expected /tmp/table.yaml, got %s", cfg.AnalyteTablePath())
		}
		if mgr.ConfigFile() != configFile {
			t.Errorf("expected %s, got %s", configFile, mgr.ConfigFile())
		}
	})

	t.Run("defaults without config file", func(t *testing.T) {
		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Defaults.MaxWorkers != 4 {
			t.Errorf("expected 4 workers, got %d", cfg.Defaults.MaxWorkers)
		}
		if !cfg.Output.Persist {
			t.Error("expected persist default true")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LABEXTRACT_SERVER_PORT", "7070")
		t.Setenv("LABEXTRACT_OUTPUT_PERSIST", "false")

		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Server.Port != "7070" {
			t.Errorf("expected 7070, got %s", cfg.Server.Port)
		}
		if cfg.Output.Persist {
			t.Error("expected persist overridden to false")
		}
	})

	t.Run("rejects negative tolerance", func(t *testing.T) {
		configFile := writeConfig(t, "layout:\n  row_tolerance: -1\n")
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for negative tolerance")
		}
	})

	t.Run("rejects unreadable config", func(t *testing.T) {
		configFile := writeConfig(t, "server: [\n")
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestManager_Entries(t *testing.T) {
	configFile := writeConfig(t, "defaults:\n  max_workers: 9\n")
	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	entries := mgr.Entries()
	if len(entries) != len(DefaultEntries()) {
		t.Fatalf("expected %d entries, got %d", len(DefaultEntries()), len(entries))
	}
	for _, e := range entries {
		if e.Description == "" {
			t.Errorf("entry %s has no description", e.Key)
		}
		if e.Key == "defaults.max_workers" && e.Value != 9 {
			t.Errorf("expected effective max_workers 9, got %v (%T)", e.Value, e.Value)
		}
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "server:\n  port: \"8081\"\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "server:\n  port: \"8081\"\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Server.Port
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "layout:\n  row_tolerance: 5\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Layout.RowTolerance)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("layout:\n  row_tolerance: 8\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Layout.RowTolerance; got != 8 {
		t.Errorf("config not updated: expected 8, got %v", got)
	}
	if v := lastValue.Load(); v != 8.0 {
		t.Errorf("callback received wrong value: expected 8, got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# labextract configuration") {
		t.Error("expected header comment")
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	got, want := mgr.Get(), DefaultConfig()
	if got.Server != want.Server || got.Layout != want.Layout || got.Output != want.Output || got.Defaults != want.Defaults {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, want)
	}
	if len(got.Repair.DisabledRules) != 0 {
		t.Errorf("expected no disabled rules, got %v", got.Repair.DisabledRules)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr error
	}{
		{"server.port", nil},
		{"layout.row_tolerance", nil},
		{"", ErrInvalidKey},
		{"server port", ErrInvalidKey},
		{".server", ErrInvalidKey},
		{"server.", ErrInvalidKey},
		{"server.missing", ErrNoDefault},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateKey(%q) = %v, want nil", tt.key, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestGetDefault(t *testing.T) {
	t.Run("existing_key", func(t *testing.T) {
		entry := GetDefault("server.port")
		if entry == nil {
			t.Fatal("GetDefault() returned nil for existing key")
		}
		if entry.Value != "8080" {
			t.Errorf("GetDefault() Value = %v, want %q", entry.Value, "8080")
		}
	})

	t.Run("non_existent_key", func(t *testing.T) {
		if entry := GetDefault("does.not.exist"); entry != nil {
			t.Errorf("GetDefault() = %v, want nil for non-existent key", entry)
		}
	})
}

func TestManager_BindFlag(t *testing.T) {
	cm, err := NewManager("", t.TempDir())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("port", "8080", "")

	t.Run("unset flag keeps default", func(t *testing.T) {
		if err := cm.BindFlag("server.port", flags.Lookup("port")); err != nil {
			t.Fatalf("BindFlag() error = %v", err)
		}
		if got := cm.Get().Server.Port; got != "8080" {
			t.Errorf("expected 8080, got %s", got)
		}
	})

	t.Run("set flag overrides", func(t *testing.T) {
		if err := flags.Parse([]string{"--port", "9191"}); err != nil {
			t.Fatal(err)
		}
		if err := cm.BindFlag("server.port", flags.Lookup("port")); err != nil {
			t.Fatalf("BindFlag() error = %v", err)
		}
		if got := cm.Get().Server.Port; got != "9191" {
			t.Errorf("expected 9191, got %s", got)
		}
	})
}
