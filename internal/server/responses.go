package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
	"github.com/simonvc/networth/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrPortfolioNotFound), errors.Is(err, store.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrDuplicateAsset):
		return http.StatusConflict
	case errors.Is(err, portfolio.ErrEmptyTicker),
		errors.Is(err, portfolio.ErrInvalidQuantity),
		errors.Is(err, portfolio.ErrInvalidTradeType),
		errors.Is(err, portfolio.ErrEmptyPortfolioName):
		return http.StatusBadRequest
	case errors.Is(err, series.ErrAxisMismatch):
		return http.StatusInternalServerError
	default:
		// Anything else came back from the upstream portfolio API.
		return http.StatusBadGateway
	}
}
