package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
	"github.com/simonvc/networth/internal/store"
	"go.uber.org/zap"
)

// Dashboard builds the views the API serves.
type Dashboard interface {
	Chart(ctx context.Context) (*series.Chart, error)
	Overview(ctx context.Context) (*networth.Overview, error)
	Portfolio(ctx context.Context, id int64) (*networth.PortfolioView, error)
	CreatePortfolio(ctx context.Context, np client.NewPortfolio) (*portfolio.Portfolio, error)
	AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error
	Trade(ctx context.Context, portfolioID int64, ticker, tradeType string, quantity int) error
}

// Snapshots reads the snapshot journal.
type Snapshots interface {
	List(ctx context.Context, limit int) ([]store.Snapshot, error)
	Get(ctx context.Context, id string) (*store.Snapshot, error)
}

type Server struct {
	dash   Dashboard
	snaps  Snapshots
	router chi.Router
	addr   string
	log    *zap.Logger
}

func New(dash Dashboard, snaps Snapshots, addr string, log *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	s := &Server{dash: dash, snaps: snaps, router: r, addr: addr, log: log}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/chart", s.getChart)
		r.Get("/overview", s.getOverview)

		// Portfolios
		r.Post("/portfolios", s.createPortfolio)
		r.Get("/portfolios/{id}", s.getPortfolio)
		r.Post("/portfolios/{id}/assets", s.addAsset)
		r.Post("/portfolios/{id}/trades", s.trade)

		// Snapshot journal
		r.Get("/snapshots", s.listSnapshots)
		r.Get("/snapshots/{id}", s.getSnapshot)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("networth api listening", zap.String("addr", s.addr))
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("networth api listening", zap.String("addr", ln.Addr().String()))
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Router exposes the router so other front ends can add routes beside the API.
func (s *Server) Router() chi.Router {
	return s.router
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
