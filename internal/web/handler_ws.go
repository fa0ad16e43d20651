package web

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/simonvc/networth/internal/series"
	"go.uber.org/zap"
)

// chartMsg is one push to the browser. Error is set instead of the chart when
// the build failed; the browser keeps showing the previous chart.
type chartMsg struct {
	Type  string            `json:"type"`
	Chart *series.ChartData `json:"chart,omitempty"`
	Error string            `json:"error,omitempty"`
	At    time.Time         `json:"at"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	log := s.log.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	// The browser only listens; CloseRead cancels ctx once it goes away.
	ctx := conn.CloseRead(context.Background())

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		if err := s.push(ctx, conn); err != nil {
			log.Debug("websocket closed", zap.Error(err))
			return
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) push(ctx context.Context, conn *websocket.Conn) error {
	msg := chartMsg{Type: "chart", At: time.Now().UTC()}
	c, err := s.charts.Chart(ctx)
	if err != nil {
		s.log.Warn("chart build failed", zap.Error(err))
		msg.Type, msg.Error = "error", err.Error()
	} else {
		data := c.Datasets()
		msg.Chart = &data
	}

	wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return wsjson.Write(wctx, conn, msg)
}
