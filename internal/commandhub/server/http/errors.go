package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/service"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/workflow"
	"github.com/autopeer-io/commandhub/pkg/log"
)

var (
	errBadRequest      = errors.New("malformed request body")
	errReportsDisabled = errors.New("report archiving is disabled")
	errRateLimited     = errors.New("rate limit exceeded")
)

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []workflow.FieldError `json:"fields,omitempty"`
}

func statusFor(err error) int {
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, errReportsDisabled):
		return http.StatusNotFound
	case errors.Is(err, service.ErrActionInFlight),
		errors.Is(err, workflow.ErrModalOpen),
		errors.Is(err, workflow.ErrNoModal),
		errors.Is(err, workflow.ErrWrongModal):
		return http.StatusConflict
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if code == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(err, "Request failed", "path", r.URL.Path)
		resp.Error = http.StatusText(code)
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
