package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/pipeline"
	"github.com/labworks/labextract/internal/svcctx"
	"github.com/labworks/labextract/version"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Analytes string `json:"analytes,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Returns ok while the HTTP server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Returns ok once the analyte table and processor are loaded
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if svcctx.ProcessorFrom(r.Context()) == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Analytes: "not_initialized"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Analytes: "loaded"})
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the analyte table)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if wait > 0 {
				if err := client.WaitReady(cmd.Context(), wait); err != nil {
					return err
				}
			}
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:   %s\n", resp.Status)
			if resp.Analytes != "" {
				fmt.Printf("Analytes: %s\n", resp.Analytes)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "Poll until the server is ready or this much time passes")
	return cmd
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server   string               `json:"server"`
	Version  string               `json:"version"`
	Analytes AnalytesStatus       `json:"analytes"`
	Pipeline []pipeline.StageInfo `json:"pipeline,omitempty"`
	Repair   RepairStatus         `json:"repair"`
	Results  ResultsStatus        `json:"results"`
	Routes   []string             `json:"routes,omitempty"`
}

// AnalytesStatus summarizes the loaded analyte table.
type AnalytesStatus struct {
	Codes  int    `json:"codes"`
	Labels int    `json:"labels"`
	Source string `json:"source"`
}

// RepairStatus lists the active repair rules in evaluation order.
type RepairStatus struct {
	Rules []string `json:"rules"`
}

// ResultsStatus describes result persistence.
type ResultsStatus struct {
	Persist bool   `json:"persist"`
	Dir     string `json:"dir,omitempty"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct {
	// Routes is set by the server since the endpoint registry is not in Services.
	Routes func() []string
}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Reports the loaded analyte table, active repair rules and result storage
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server:  "running",
		Version: version.GitRelease,
	}

	if proc := svcctx.ProcessorFrom(r.Context()); proc != nil {
		resp.Analytes.Codes = proc.Table().Len()
		resp.Analytes.Labels = proc.Table().LabelCount()
		resp.Analytes.Source = "built-in"
		resp.Pipeline = proc.Stages()
		resp.Repair.Rules = proc.Rules()
	} else {
		resp.Server = "initializing"
		resp.Analytes.Source = "not_initialized"
	}
	if mgr := svcctx.ConfigManagerFrom(r.Context()); mgr != nil {
		if path := mgr.Get().AnalyteTablePath(); path != "" && resp.Analytes.Source != "not_initialized" {
			resp.Analytes.Source = path
		}
	}

	resp.Results.Persist = svcctx.PersistFrom(r.Context())
	if sink := svcctx.SinkFrom(r.Context()); sink != nil {
		resp.Results.Dir = sink.Dir()
	}

	if e.Routes != nil {
		resp.Routes = e.Routes()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
