package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/preston-bernstein/ecf-team-win/internal/metrics"
	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
	"github.com/preston-bernstein/ecf-team-win/internal/teamwin"
	"github.com/preston-bernstein/ecf-team-win/internal/view"
)

const (
	formTeam1  = "team1"
	formTeam2  = "team2"
	formAction = "action"
	formRemove = "remove"
	formBoard  = "board"

	actionAdd           = "add"
	actionCalculate     = "calculate"
	actionConfirmRemove = "confirm-remove"
	actionCancel        = "cancel"

	maxFormBytes = 16 << 10
)

// Handler wires HTTP routes to the submission controller.
type Handler struct {
	ctrl          *submit.Controller
	logger        *slog.Logger
	recorder      *metrics.Recorder
	submitTimeout time.Duration
}

// Option customises a Handler.
type Option func(*Handler)

// WithRecorder reports upstream call counts on /health.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(h *Handler) { h.recorder = rec }
}

// WithSubmitTimeout bounds each submission, including the service call.
// Zero leaves submissions bounded only by the request context.
func WithSubmitTimeout(d time.Duration) Option {
	return func(h *Handler) { h.submitTimeout = d }
}

// NewHandler constructs a Handler with defaults.
func NewHandler(ctrl *submit.Controller, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		ctrl:   ctrl,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type healthResponse struct {
	Status   string         `json:"status"`
	Upstream upstreamHealth `json:"upstream"`
}

type upstreamHealth struct {
	Calls  int `json:"calls"`
	Errors int `json:"errors"`
}

// Health reports the service health and how the win-probability service has
// been answering.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Upstream: upstreamHealth{
			Calls:  h.recorder.UpstreamCalls(teamwin.UpstreamName),
			Errors: h.recorder.UpstreamErrors(teamwin.UpstreamName),
		},
	}, h.logger)
}

// submitContext applies the submission budget to the request context.
func (h *Handler) submitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.submitTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.submitTimeout)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ctrl == nil {
		writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// NotFound is the JSON 404 used by the router.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 used by the router.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// Form renders an empty one-board form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage().Sheet(ratings.NewSheet()).Build()
	writePage(w, r, http.StatusOK, page, loggerFromContext(r, h.logger))
}

// Boards handles every button on the form. The rows travel in the form
// itself, so each post rebuilds the sheet before applying the action.
func (h *Handler) Boards(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form", h.logger)
		return
	}

	sheet, err := sheetFromForm(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	builder := view.NewPage()

	if raw := r.PostForm.Get(formRemove); raw != "" {
		board, err := strconv.Atoi(raw)
		if err != nil || board < 1 || board > sheet.Len() {
			writeError(w, r, http.StatusBadRequest, "invalid board", h.logger)
			return
		}
		// Removing the last board is blocked before asking.
		if sheet.CanRemove() {
			builder.ConfirmRemoval(board)
		}
		writePage(w, r, http.StatusOK, builder.Sheet(sheet).Build(), logger)
		return
	}

	switch r.PostForm.Get(formAction) {
	case actionAdd:
		if err := sheet.Add(); err != nil && !errors.Is(err, ratings.ErrSheetFull) {
			writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
	case actionConfirmRemove:
		board, err := strconv.Atoi(r.PostForm.Get(formBoard))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid board", h.logger)
			return
		}
		err = sheet.Remove(board, true)
		switch {
		case err == nil, errors.Is(err, ratings.ErrSheetMinimum):
		case errors.Is(err, ratings.ErrBoardOutOfRange):
			writeError(w, r, http.StatusBadRequest, "invalid board", h.logger)
			return
		default:
			writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
	case actionCancel:
	case actionCalculate, "":
		ctx, cancel := h.submitContext(r.Context())
		outcome := h.ctrl.Submit(ctx, sheet.Entries(), nil)
		cancel()
		builder.Outcome(outcome)
	default:
		writeError(w, r, http.StatusBadRequest, "unknown action", h.logger)
		return
	}

	writePage(w, r, http.StatusOK, builder.Sheet(sheet).Build(), logger)
}

func sheetFromForm(r *http.Request) (*ratings.Sheet, error) {
	team1 := r.PostForm[formTeam1]
	team2 := r.PostForm[formTeam2]
	n := len(team1)
	if len(team2) > n {
		n = len(team2)
	}
	if n > ratings.MaxBoards {
		return nil, errBoardCount
	}

	entries := make([]ratings.BoardEntry, n)
	for i := range entries {
		if i < len(team1) {
			entries[i].Team1Text = team1[i]
		}
		if i < len(team2) {
			entries[i].Team2Text = team2[i]
		}
	}
	return ratings.NewSheet(entries...), nil
}
