package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
)

const maxJSONBytes = 16 << 10

var errBoardCount = fmt.Errorf("boards must contain between %d and %d entries", ratings.MinBoards, ratings.MaxBoards)

// submitRequest is the JSON shape shared by the API and the websocket.
type submitRequest struct {
	Boards []ratings.BoardEntry `json:"boards"`
}

func (req submitRequest) validate() error {
	if len(req.Boards) < ratings.MinBoards || len(req.Boards) > ratings.MaxBoards {
		return errBoardCount
	}
	return nil
}

// TeamWin runs a submission from a JSON body and returns the outcome.
func (h *Handler) TeamWin(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	ctx, cancel := h.submitContext(r.Context())
	defer cancel()
	outcome := h.ctrl.Submit(ctx, req.Boards, nil)
	switch outcome.State {
	case submit.Success:
		writeJSON(w, http.StatusOK, outcome, h.logger)
	case submit.CollectError:
		writeJSON(w, http.StatusBadRequest, outcomeError(r, outcome), h.logger)
	case submit.RequestFailure:
		writeJSON(w, http.StatusBadGateway, outcomeError(r, outcome), h.logger)
	default:
		writeJSON(w, http.StatusServiceUnavailable, outcomeError(r, outcome), h.logger)
	}
}

func outcomeError(r *http.Request, outcome submit.Outcome) map[string]string {
	body := errorBody(r, outcome.Error)
	body["state"] = outcome.State.String()
	body["status"] = outcome.Status
	return body
}
