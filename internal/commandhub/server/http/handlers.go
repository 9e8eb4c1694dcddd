package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/service"
	"github.com/autopeer-io/commandhub/internal/commandhub/notifier"
	"github.com/autopeer-io/commandhub/internal/commandhub/storage"
)

const defaultReportURLExpiry = 15 * time.Minute

// Handler serves the command API.
type Handler struct {
	svc     *service.Service
	reports storage.Provider
	expiry  time.Duration
}

// NewHandler creates the command API. reports may be nil when archiving is off.
func NewHandler(svc *service.Service, reports storage.Provider) *Handler {
	return &Handler{svc: svc, reports: reports, expiry: defaultReportURLExpiry}
}

// Register mounts the routes on r.
func (h *Handler) Register(r *mux.Router) {
	// groups must be registered before the {id} route
	r.HandleFunc("/actions", h.listActions).Methods(http.MethodGet)
	r.HandleFunc("/actions/groups", h.groupActions).Methods(http.MethodGet)
	r.HandleFunc("/actions/{id}", h.getAction).Methods(http.MethodGet)

	r.HandleFunc("/sessions", h.createSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sid}", h.closeSession).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{sid}/modal", h.getModal).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{sid}/actions/{id}", h.trigger).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sid}/confirm", h.confirm).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sid}/submit", h.submit).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sid}/cancel", h.cancel).Methods(http.MethodPost)

	r.HandleFunc("/reports/{id}", h.reportURL).Methods(http.MethodGet)
}

// actionResponse is returned by every session operation that may run an action.
type actionResponse struct {
	Modal         *model.ModalState      `json:"modal,omitempty"`
	Execution     *model.ExecutionResult `json:"execution,omitempty"`
	Notifications []model.Notification   `json:"notifications,omitempty"`
}

type submitRequest struct {
	Data model.FormData `json:"data"`
}

func (h *Handler) listActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListActions(r.URL.Query().Get("q")))
}

func (h *Handler) groupActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GroupActions(r.URL.Query().Get("q")))
}

func (h *Handler) getAction(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAction(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.svc.CreateSession(r.Context()))
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CloseSession(mux.Vars(r)["sid"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getModal(w http.ResponseWriter, r *http.Request) {
	modal, err := h.svc.Modal(mux.Vars(r)["sid"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, modal)
}

func (h *Handler) trigger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rec := &notifier.Recorder{}
	ctx := notifier.WithRecorder(r.Context(), rec)

	res, err := h.svc.Trigger(ctx, vars["sid"], vars["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Modal:         res.Modal,
		Execution:     res.Execution,
		Notifications: rec.Notifications(),
	})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	rec := &notifier.Recorder{}
	ctx := notifier.WithRecorder(r.Context(), rec)

	res, err := h.svc.Confirm(ctx, mux.Vars(r)["sid"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Execution: res, Notifications: rec.Notifications()})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	rec := &notifier.Recorder{}
	ctx := notifier.WithRecorder(r.Context(), rec)

	res, err := h.svc.Submit(ctx, mux.Vars(r)["sid"], req.Data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Execution: res, Notifications: rec.Notifications()})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	canceled, err := h.svc.Cancel(r.Context(), mux.Vars(r)["sid"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"canceled": canceled})
}

func (h *Handler) reportURL(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, r, errReportsDisabled)
		return
	}
	u, err := h.reports.ReportURL(r.Context(), mux.Vars(r)["id"], h.expiry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}
