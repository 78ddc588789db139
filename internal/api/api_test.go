package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("expected request id header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var resp struct {
		Status string `json:"status"`
	}
	if err := NewClient(srv.URL).Get(context.Background(), "/health", &resp); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %s", resp.Status)
	}
}

func TestClient_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	ids := map[string]bool{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids[r.Header.Get(RequestIDHeader)] = true
		mu.Unlock()
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL).WithRetry(3, time.Millisecond)
	if err := client.Get(context.Background(), "/api/analytes", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
	if len(ids) != 1 {
		t.Errorf("expected one request id across retries, got %d", len(ids))
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"result not found"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).WithRetry(5, time.Millisecond).Get(context.Background(), "/api/results/1", nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound || se.Message != "result not found" {
		t.Errorf("unexpected status error: %+v", se)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Get(context.Background(), "/", nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected error containing boom, got %v", err)
	}
}

func TestClient_PostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}
		if r.FormValue("seqn") != "1001" {
			t.Errorf("expected seqn 1001, got %q", r.FormValue("seqn"))
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if fh.Filename != "report.pdf" || string(data) != "%PDF-1.4 test" {
			t.Errorf("unexpected upload %s: %q", fh.Filename, data)
		}
		w.Write([]byte(`[["SEQN","1001"]]`))
	}))
	defer srv.Close()

	var resp [][]string
	err := NewClient(srv.URL).PostFile(context.Background(), "/api/bloodwork/upload", "file", path,
		map[string]string{"seqn": "1001"}, &resp)
	if err != nil {
		t.Fatalf("PostFile() error = %v", err)
	}
	if len(resp) != 1 || resp[0][1] != "1001" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestClient_WaitReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).WaitReady(context.Background(), time.Second); err != nil {
		t.Errorf("WaitReady() error = %v", err)
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]string{"status": "ok"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"status": "ok"`) {
			t.Errorf("unexpected json output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "status: ok\n" {
			t.Errorf("unexpected yaml output: %q", buf.String())
		}
	})

	t.Run("tsv cells", func(t *testing.T) {
		var buf bytes.Buffer
		rows := [][]string{{"SEQN", "1001"}, {"LBXGLU", "95"}}
		if err := OutputTo(&buf, OutputFormatTSV, rows); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "SEQN\t1001\nLBXGLU\t95\n" {
			t.Errorf("unexpected tsv output: %q", buf.String())
		}
	})

	t.Run("tsv lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatTSV, []string{"Glucose 95"}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "Glucose 95\n" {
			t.Errorf("unexpected tsv output: %q", buf.String())
		}
	})

	t.Run("tsv unsupported", func(t *testing.T) {
		if err := OutputTo(io.Discard, OutputFormatTSV, data); err == nil {
			t.Error("expected error for map as tsv")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := OutputTo(io.Discard, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"json", OutputFormatJSON},
		{"TSV", OutputFormatTSV},
		{"yaml", OutputFormatYAML},
		{"xml", OutputFormatYAML},
	}
	for _, tt := range tests {
		SetOutputFormat(tt.in)
		if got := GetOutputFormat(); got != tt.want {
			t.Errorf("SetOutputFormat(%q) gave %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := OutputToFile(map[string]int{"n": 1}, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"n": 1`) {
		t.Errorf("expected json file, got %s", data)
	}
}

type stubEndpoint struct {
	method, path string
	init         bool
	noCommand    bool
}

func (s stubEndpoint) Route() (string, string, http.HandlerFunc) {
	return s.method, s.path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s stubEndpoint) RequiresInit() bool { return s.init }

func (s stubEndpoint) Command(func() string) *cobra.Command {
	if s.noCommand {
		return nil
	}
	return &cobra.Command{Use: strings.TrimPrefix(s.path, "/")}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubEndpoint{method: "GET", path: "/open"})
	r.Register(stubEndpoint{method: "GET", path: "/guarded", init: true})
	r.Register(stubEndpoint{method: "POST", path: "/hidden", noCommand: true})

	mux := http.NewServeMux()
	r.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	tests := []struct {
		method, path string
		want         int
	}{
		{"GET", "/open", http.StatusNoContent},
		{"GET", "/guarded", http.StatusServiceUnavailable},
		{"POST", "/hidden", http.StatusNoContent},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}

	if got := r.Routes(); len(got) != 3 || got[2] != "POST /hidden" {
		t.Errorf("unexpected routes %v", got)
	}

	cmd := r.BuildCommands(func() string { return "" })
	if len(cmd.Commands()) != 2 {
		t.Errorf("expected 2 subcommands, got %d", len(cmd.Commands()))
	}
}
