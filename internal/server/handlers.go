package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/series"
	"github.com/simonvc/networth/internal/store"
)

// chartResponse is the chart widget payload plus the portfolios left out.
type chartResponse struct {
	series.ChartData
	Rejected []string `json:"rejected"`
}

func newChartResponse(c *series.Chart) chartResponse {
	resp := chartResponse{ChartData: c.Datasets(), Rejected: []string{}}
	for _, r := range c.Rejected {
		resp.Rejected = append(resp.Rejected, r.Name)
	}
	return resp
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.dash.Chart(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newChartResponse(c))
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.dash.Overview(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func portfolioID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return 0, false
	}
	return id, true
}

func (s *Server) getPortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioID(w, r)
	if !ok {
		return
	}
	v, err := s.dash.Portfolio(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) createPortfolio(w http.ResponseWriter, r *http.Request) {
	var req client.NewPortfolio
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	p, err := s.dash.CreatePortfolio(r.Context(), req)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type addAssetRequest struct {
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
}

func (s *Server) addAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioID(w, r)
	if !ok {
		return
	}
	var req addAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.dash.AddAsset(r.Context(), id, req.Ticker, req.Quantity); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

type tradeRequest struct {
	Ticker   string `json:"ticker"`
	Type     string `json:"transaction_type"`
	Quantity int    `json:"quantity"`
}

func (s *Server) trade(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioID(w, r)
	if !ok {
		return
	}
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.dash.Trade(r.Context(), id, req.Ticker, req.Type, req.Quantity); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	snaps, err := s.snaps.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snaps == nil {
		snaps = []store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snaps.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
