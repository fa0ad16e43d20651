package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/simonvc/networth/internal/series"
)

type Portfolio struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// UserPortfolio links the authenticated user to a portfolio they own.
type UserPortfolio struct {
	PortfolioID int64 `json:"portfolio_id"`
}

type Asset struct {
	ID          int64   `json:"id"`
	PortfolioID int64   `json:"portfolio_id"`
	Ticker      string  `json:"ticker"`
	Quantity    float64 `json:"quantity"`
}

type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// ParseTradeType accepts buy/sell in any case.
func ParseTradeType(s string) (TradeType, error) {
	switch t := TradeType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TradeBuy, TradeSell:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTradeType, s)
	}
}

type Transaction struct {
	ID               int64     `json:"id"`
	PortfolioID      int64     `json:"portfolio_id"`
	PortfolioAssetID int64     `json:"portfolio_asset_id"`
	Type             string    `json:"transaction_type"`
	Quantity         float64   `json:"quantity"`
	DateTime         time.Time `json:"datetime"`
}

// TradeType returns the normalised transaction type, or "" if unknown.
func (t Transaction) TradeType() TradeType {
	tt, err := ParseTradeType(t.Type)
	if err != nil {
		return ""
	}
	return tt
}

// WeeklyChange is the percentage move of one holding over the last week.
type WeeklyChange struct {
	Ticker    string  `json:"ticker"`
	ChangePct float64 `json:"changePct"`
}

// CumulativePrices is the value history the API returns for a portfolio.
// Dates[i] corresponds to Values[i]. A nil value is a null in the payload.
type CumulativePrices struct {
	Dates  []string   `json:"dates"`
	Values []*float64 `json:"values"`
}

// Series converts the payload into a validated series named name. Dates may be
// plain days or RFC 3339 timestamps; timestamps are truncated to their day.
func (p *CumulativePrices) Series(name string) (series.Series, error) {
	if p == nil || p.Dates == nil || p.Values == nil {
		return series.Series{}, fmt.Errorf("%w: %s: missing dates or values", series.ErrMalformedSeries, name)
	}
	if len(p.Dates) != len(p.Values) {
		return series.Series{}, fmt.Errorf("%w: %s: %d dates but %d values",
			series.ErrMalformedSeries, name, len(p.Dates), len(p.Values))
	}

	s := series.Series{Name: name, Samples: make([]series.Sample, len(p.Dates))}
	for i, d := range p.Dates {
		if p.Values[i] == nil {
			return series.Series{}, fmt.Errorf("%w: %s: value %d on %s is null",
				series.ErrMalformedSeries, name, i, d)
		}
		s.Samples[i] = series.Sample{Date: normalizeDate(d), Value: *p.Values[i]}
	}
	if err := series.Validate(s); err != nil {
		return series.Series{}, err
	}
	return s, nil
}

// SampleValues returns the values of a validated series in date order.
func SampleValues(s series.Series) []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Value
	}
	return out
}

func normalizeDate(d string) string {
	d = strings.TrimSpace(d)
	if t, err := time.Parse(time.RFC3339, d); err == nil {
		return t.UTC().Format(series.DateFormat)
	}
	return d
}
