package endpoints

import (
	"errors"
	"net/http"

	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/words"
)

// statusFor maps a processing error to an HTTP status code.
func statusFor(err error) int {
	var decodeErr *words.DecodeError
	var malformedErr *layout.MalformedIntermediateError
	switch {
	case errors.As(err, &decodeErr),
		errors.As(err, &malformedErr),
		errors.Is(err, result.ErrInvalidSampleID):
		return http.StatusBadRequest
	case errors.Is(err, result.ErrResultNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeProcessError writes err with the status statusFor picks.
func writeProcessError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}
