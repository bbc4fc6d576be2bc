package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/ecf-team-win/internal/http/handlers"
)

// NewRouter registers HTTP routes on a chi router. Middlewares run in the
// order given, outermost first.
func NewRouter(handler *handlers.Handler, middlewares ...func(nethttp.Handler) nethttp.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/", handler.Form)
	r.Post("/boards", handler.Boards)
	r.Post("/api/team-win", handler.TeamWin)
	r.Get("/ws", handler.LiveSubmit)
	return r
}
