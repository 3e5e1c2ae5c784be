package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"watchhub/internal/usecase"
	"watchhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// responder is embedded by every handler for shared error mapping.
type responder struct {
	log *zap.Logger
}

// handleServiceError maps service error kinds to status codes. Unknown
// errors are logged and hidden behind a generic message.
func (h responder) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrProvider):
		h.log.Error(operation+" failed - provider",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeBody fills dst from the JSON body. An empty body is allowed when
// optional is set.
func decodeBody(r *http.Request, dst any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// pathID reads a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// queryInts collects integer query parameters that failed to parse,
// keyed by parameter name.
type queryInts map[string]string

func (q queryInts) optional(values url.Values, name string) *int {
	n, err := utils.ParseOptionalInt(values.Get(name))
	if err != nil {
		q[name] = "Must be a whole number"
		return nil
	}
	return n
}

func (q queryInts) withDefault(values url.Values, name string, fallback int) int {
	if n := q.optional(values, name); n != nil {
		return *n
	}
	return fallback
}
