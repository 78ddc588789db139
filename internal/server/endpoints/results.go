package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/svcctx"
)

// GetResultEndpoint handles GET /api/results/{seqn}.
type GetResultEndpoint struct{}

func (e *GetResultEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/results/{seqn}", e.handler
}

func (e *GetResultEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a stored result
//	@Description	Returns the persisted result for a sample
//	@Tags			results
//	@Produce		json
//	@Param			seqn	path		string	true	"Sample identifier"
//	@Success		200		{array}		[]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/results/{seqn} [get]
func (e *GetResultEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	seqn := r.PathValue("seqn")
	if seqn == "" {
		writeError(w, http.StatusBadRequest, "seqn is required")
		return
	}

	sink := svcctx.SinkFrom(r.Context())
	if sink == nil {
		writeError(w, http.StatusServiceUnavailable, "result store not initialized")
		return
	}

	doc, err := sink.Read(seqn)
	if err != nil {
		writeProcessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (e *GetResultEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "result <seqn>",
		Short: "Fetch a stored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var doc result.Document
			if err := client.Get(cmd.Context(), "/api/results/"+url.PathEscape(args[0]), &doc); err != nil {
				return err
			}
			return api.Output(doc)
		},
	}
}
