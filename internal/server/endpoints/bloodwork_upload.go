package endpoints

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/svcctx"
)

// maxUploadMemory bounds the in-memory part of a multipart upload;
// larger files spill to disk.
const maxUploadMemory = 32 << 20

// UploadEndpoint handles POST /api/bloodwork/upload.
type UploadEndpoint struct{}

var _ api.Endpoint = (*UploadEndpoint)(nil)

func (e *UploadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bloodwork/upload", e.handler
}

func (e *UploadEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Extract a lab report
//	@Description	Upload a two-column lab report PDF and receive every analyte code with its value, led by ["SEQN", seqn]
//	@Tags			bloodwork
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Lab report PDF"
//	@Param			seqn	formData	string	true	"Sample identifier"
//	@Success		200		{array}		[]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/bloodwork/upload [post]
func (e *UploadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	seqn := strings.TrimSpace(r.FormValue("seqn"))
	if err := result.ValidateSampleID(seqn); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, fh, err := r.FormFile("file")
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
	logger := svcctx.LoggerFrom(r.Context())

	start := time.Now()
	doc, err := proc.Process(r.Context(), seqn, file)
	record(r, metrics.RecordOpts{SampleID: seqn, Operation: metrics.OpUpload, Document: &doc, Start: start, Err: err})
	if err != nil {
		logger.Warn("extraction failed", "sample_id", seqn, "file", fh.Filename, "error", err)
		writeProcessError(w, err)
		return
	}

	if !persist(w, r, doc) {
		return
	}

	logger.Info("extracted lab report", "sample_id", seqn, "file", fh.Filename, "size", fh.Size)
	writeJSON(w, http.StatusOK, doc)
}

func (e *UploadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var seqn string
	cmd := &cobra.Command{
		Use:   "upload <pdf>",
		Short: "Extract a lab report PDF on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var doc result.Document
			err := client.PostFile(cmd.Context(), "/api/bloodwork/upload", "file", args[0],
				map[string]string{"seqn": seqn}, &doc)
			if err != nil {
				return err
			}
			return api.Output(doc)
		},
	}
	cmd.Flags().StringVar(&seqn, "seqn", "", "Sample identifier (required)")
	cmd.MarkFlagRequired("seqn")
	return cmd
}

// persist writes doc to the sink when persistence is on. It reports false
// after writing an error response.
func persist(w http.ResponseWriter, r *http.Request, doc result.Document) bool {
	if !svcctx.PersistFrom(r.Context()) {
		return true
	}
	path, err := svcctx.SinkFrom(r.Context()).Write(doc)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to persist result", "sample_id", doc.SampleID, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to persist result: %v", err))
		return false
	}
	svcctx.LoggerFrom(r.Context()).Debug("persisted result", "sample_id", doc.SampleID, "path", path)
	return true
}
