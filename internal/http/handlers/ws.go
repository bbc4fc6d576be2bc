package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// LiveSubmit upgrades to a websocket. Every message is a submission; the
// server answers with each state the submission passes through, so clients
// see "Calculating..." before the result arrives.
func (h *Handler) LiveSubmit(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxJSONBytes)

	send := func(payload any) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(payload); err != nil {
			logging.Warn(logger, "websocket write failed", "err", err)
			return false
		}
		return true
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info(logger, "websocket closed", "err", err)
			}
			return
		}

		var req submitRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			if !send(errorBody(r, "invalid request body")) {
				return
			}
			continue
		}
		if err := req.validate(); err != nil {
			if !send(errorBody(r, err.Error())) {
				return
			}
			continue
		}

		ok := true
		ctx, cancel := h.submitContext(r.Context())
		h.ctrl.Submit(ctx, req.Boards, func(o submit.Outcome) {
			if ok {
				ok = send(o)
			}
		})
		cancel()
		if !ok {
			return
		}
	}
}
