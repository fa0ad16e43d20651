// Package web serves the browser dashboard: a page drawing the combined
// net-worth chart and a websocket that pushes refreshed chart data.
package web

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/simonvc/networth/internal/series"
	"github.com/simonvc/networth/internal/server"
	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML []byte

// ChartSource builds the current combined chart.
type ChartSource interface {
	Chart(ctx context.Context) (*series.Chart, error)
}

// Server serves the web dashboard alongside the JSON API.
type Server struct {
	api     *server.Server
	charts  ChartSource
	refresh time.Duration
	log     *zap.Logger
}

// NewServer adds the dashboard routes to api's router. Connected browsers
// receive a new chart every refresh.
func NewServer(api *server.Server, charts ChartSource, refresh time.Duration, log *zap.Logger) *Server {
	s := &Server{
		api:     api,
		charts:  charts,
		refresh: refresh,
		log:     log,
	}

	r := api.Router()
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)

	return s
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// ListenAndServe starts the dashboard and API on one listener.
func (s *Server) ListenAndServe() error {
	return s.api.ListenAndServe()
}

func (s *Server) Handler() http.Handler {
	return s.api.Handler()
}
