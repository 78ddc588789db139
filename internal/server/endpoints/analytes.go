package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/svcctx"
)

// AnalytesResponse lists the analyte table in output order.
type AnalytesResponse struct {
	Count    int              `json:"count"`
	Analytes []analytes.Entry `json:"analytes"`
}

// ListAnalytesEndpoint handles GET /api/analytes.
type ListAnalytesEndpoint struct{}

func (e *ListAnalytesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/analytes", e.handler
}

func (e *ListAnalytesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List analytes
//	@Description	Returns every analyte code with its printed label, in result order
//	@Tags			analytes
//	@Produce		json
//	@Success		200	{object}	AnalytesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/analytes [get]
func (e *ListAnalytesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	proc := svcctx.ProcessorFrom(r.Context())
	if proc == nil {
		writeError(w, http.StatusServiceUnavailable, "processor not initialized")
		return
	}

	entries := proc.Table().Entries()
	writeJSON(w, http.StatusOK, AnalytesResponse{Count: len(entries), Analytes: entries})
}

func (e *ListAnalytesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "analytes",
		Short: "List the server's analyte table",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp AnalytesResponse
			if err := client.Get(cmd.Context(), "/api/analytes", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
