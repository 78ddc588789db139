package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/svcctx"
)

// record adds a metric when a recorder is configured.
func record(r *http.Request, opts metrics.RecordOpts) {
	rec := svcctx.MetricsFrom(r.Context())
	if rec == nil {
		return
	}
	opts.RequestID = svcctx.RequestIDFrom(r.Context())
	rec.Record(opts)
}

// metricsFilter reads seqn, operation and success query parameters.
func metricsFilter(q url.Values) metrics.Filter {
	f := metrics.Filter{
		SampleID:  q.Get("seqn"),
		Operation: q.Get("operation"),
	}
	if v, err := strconv.ParseBool(q.Get("success")); err == nil {
		f.Success = &v
	}
	return f
}

// metricsQuery builds the query string for the CLI commands.
func metricsQuery(seqn, operation string, limit int) string {
	q := url.Values{}
	if seqn != "" {
		q.Set("seqn", seqn)
	}
	if operation != "" {
		q.Set("operation", operation)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListMetricsResponse is the response for listing metrics.
type ListMetricsResponse struct {
	Metrics []metrics.Metric `json:"metrics"`
	Count   int              `json:"count"`
}

// ListMetricsEndpoint handles GET /api/metrics.
type ListMetricsEndpoint struct{}

func (e *ListMetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics", e.handler
}

func (e *ListMetricsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List metrics
//	@Description	Recent extraction metrics, newest first
//	@Tags			metrics
//	@Produce		json
//	@Param			seqn		query		string	false	"Filter by sample identifier"
//	@Param			operation	query		string	false	"Filter by operation (upload, raw, resolve)"
//	@Param			success		query		bool	false	"Filter by outcome"
//	@Param			limit		query		int		false	"Max results (default 100)"
//	@Success		200			{object}	ListMetricsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/metrics [get]
func (e *ListMetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec := svcctx.MetricsFrom(r.Context())
	if rec == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not initialized")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list := rec.List(metricsFilter(r.URL.Query()), limit)
	writeJSON(w, http.StatusOK, ListMetricsResponse{Metrics: list, Count: len(list)})
}

func (e *ListMetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var seqn, operation string
	var limit int
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List recent extraction metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListMetricsResponse
			if err := client.Get(cmd.Context(), "/api/metrics"+metricsQuery(seqn, operation, limit), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&seqn, "seqn", "", "Filter by sample identifier")
	cmd.Flags().StringVar(&operation, "operation", "", "Filter by operation (upload, raw, resolve)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (default 100)")
	return cmd
}

// MetricsSummaryResponse contains overall and per-operation statistics.
type MetricsSummaryResponse struct {
	Overall     *metrics.DetailedStats            `json:"overall"`
	ByOperation map[string]*metrics.DetailedStats `json:"by_operation,omitempty"`
}

// MetricsSummaryEndpoint handles GET /api/metrics/summary.
type MetricsSummaryEndpoint struct{}

func (e *MetricsSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics/summary", e.handler
}

func (e *MetricsSummaryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Metrics summary
//	@Description	Counts, error breakdown and latency percentiles of recorded extractions
//	@Tags			metrics
//	@Produce		json
//	@Param			seqn		query		string	false	"Filter by sample identifier"
//	@Param			operation	query		string	false	"Filter by operation"
//	@Success		200			{object}	MetricsSummaryResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/metrics/summary [get]
func (e *MetricsSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec := svcctx.MetricsFrom(r.Context())
	if rec == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not initialized")
		return
	}

	f := metricsFilter(r.URL.Query())
	resp := MetricsSummaryResponse{Overall: rec.GetDetailedStats(f)}
	if f.Operation == "" && f.SampleID == "" {
		resp.ByOperation = rec.OperationStats()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *MetricsSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var seqn, operation string
	cmd := &cobra.Command{
		Use:   "metrics-summary",
		Short: "Show extraction latency and error statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp MetricsSummaryResponse
			if err := client.Get(cmd.Context(), "/api/metrics/summary"+metricsQuery(seqn, operation, 0), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&seqn, "seqn", "", "Filter by sample identifier")
	cmd.Flags().StringVar(&operation, "operation", "", "Filter by operation")
	return cmd
}
