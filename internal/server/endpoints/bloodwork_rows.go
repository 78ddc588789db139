package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/svcctx"
)

// maxRowsBody bounds the intermediate row payload.
const maxRowsBody = 8 << 20

// ResolveRowsEndpoint handles POST /api/bloodwork/rows.
type ResolveRowsEndpoint struct{}

var _ api.Endpoint = (*ResolveRowsEndpoint)(nil)

func (e *ResolveRowsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bloodwork/rows", e.handler
}

func (e *ResolveRowsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Resolve intermediate rows
//	@Description	Repair and resolve a JSON array of [left, right] rows, as returned by the raw endpoint
//	@Tags			bloodwork
//	@Accept			json
//	@Produce		json
//	@Param			seqn	query		string		true	"Sample identifier"
//	@Param			rows	body		[][]string	true	"Intermediate rows"
//	@Success		200		{array}		[]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/bloodwork/rows [post]
func (e *ResolveRowsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	seqn := strings.TrimSpace(r.URL.Query().Get("seqn"))
	if err := result.ValidateSampleID(seqn); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRowsBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read body: %v", err))
		return
	}

	cells, err := layout.DecodeRows(body)
	if err != nil {
		writeProcessError(w, err)
		return
	}

	proc := svcctx.ProcessorFrom(r.Context())
	if proc == nil {
		writeError(w, http.StatusServiceUnavailable, "processor not initialized")
		return
	}

	start := time.Now()
	doc, err := proc.ResolveRows(seqn, cells)
	record(r, metrics.RecordOpts{SampleID: seqn, Operation: metrics.OpResolve, Rows: len(cells), Document: &doc, Start: start, Err: err})
	if err != nil {
		writeProcessError(w, err)
		return
	}
	if !persist(w, r, doc) {
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("resolved rows", "sample_id", seqn, "rows", len(cells))
	writeJSON(w, http.StatusOK, doc)
}

func (e *ResolveRowsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var seqn string
	cmd := &cobra.Command{
		Use:   "resolve <rows.json>",
		Short: "Resolve a saved row set on the server",
		Long: `Resolve a JSON array of [left, right] rows, such as the output of
"labextract rows" or "labextract api raw". Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read rows: %w", err)
			}

			client := api.NewClient(getServerURL())
			var doc result.Document
			path := "/api/bloodwork/rows?seqn=" + url.QueryEscape(seqn)
			if err := client.PostRaw(cmd.Context(), path, "application/json", data, &doc); err != nil {
				return err
			}
			return api.Output(doc)
		},
	}
	cmd.Flags().StringVar(&seqn, "seqn", "", "Sample identifier (required)")
	cmd.MarkFlagRequired("seqn")
	return cmd
}
