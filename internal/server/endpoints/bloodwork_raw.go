package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/svcctx"
)

// Raw output formats.
const (
	RawFormatRows  = "rows"
	RawFormatLines = "lines"
)

// RawUploadEndpoint handles POST /api/bloodwork/upload/raw.
type RawUploadEndpoint struct{}

var _ api.Endpoint = (*RawUploadEndpoint)(nil)

func (e *RawUploadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bloodwork/upload/raw", e.handler
}

func (e *RawUploadEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reconstruct report rows
//	@Description	Upload a lab report PDF and receive its clustered rows, before repair and label resolution
//	@Tags			bloodwork
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Lab report PDF"
//	@Param			format	formData	string	false	"rows (default) for [left, right] pairs, lines for flattened text"
//	@Success		200		{array}		[]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/bloodwork/upload/raw [post]
func (e *RawUploadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := r.FormValue("format")
	if format == "" {
		format = RawFormatRows
	}
	if format != RawFormatRows && format != RawFormatLines {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	proc := svcctx.ProcessorFrom(r.Context())
	if proc == nil {
		writeError(w, http.StatusServiceUnavailable, "processor not initialized")
		return
	}

	start := time.Now()
	rows, err := proc.Rows(r.Context(), file)
	record(r, metrics.RecordOpts{Operation: metrics.OpRaw, Rows: len(rows), Start: start, Err: err})
	if err != nil {
		writeProcessError(w, err)
		return
	}

	if format == RawFormatLines {
		writeJSON(w, http.StatusOK, layout.Lines(rows))
		return
	}
	writeJSON(w, http.StatusOK, layout.ToCells(rows))
}

func (e *RawUploadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "raw <pdf>",
		Short: "Show the rows the server reconstructs from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp any
			err := client.PostFile(cmd.Context(), "/api/bloodwork/upload/raw", "file", args[0],
				map[string]string{"format": format}, &resp)
			if err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&format, "format", RawFormatRows, "Output shape: rows or lines")
	return cmd
}
