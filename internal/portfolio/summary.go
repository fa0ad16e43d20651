package portfolio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// yearlyLookback is how many samples back the yearly change is measured from.
// The API reports monthly points, so twelve samples span a year.
const yearlyLookback = 12

// LatestValue returns the most recent value of a history.
func LatestValue(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}

// AverageChange returns the mean weekly change across holdings.
func AverageChange(changes []WeeklyChange) (float64, bool) {
	if len(changes) == 0 {
		return 0, false
	}
	sum := decimal.Zero
	for _, c := range changes {
		sum = sum.Add(decimal.NewFromFloat(c.ChangePct))
	}
	return sum.Div(decimal.NewFromInt(int64(len(changes)))).InexactFloat64(), true
}

// YearlyChange returns the percentage change from yearlyLookback samples ago
// (or the first sample for shorter histories) to the latest sample.
func YearlyChange(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	base := values[max(0, len(values)-yearlyLookback)]
	if base == 0 {
		return 0, false
	}
	latest := decimal.NewFromFloat(values[len(values)-1])
	first := decimal.NewFromFloat(base)
	return latest.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).InexactFloat64(), true
}

// NetWorth sums the latest values of every portfolio.
func NetWorth(latest []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range latest {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

// RecentTransactions returns at most n transactions, newest first. The API
// returns them oldest first.
func RecentTransactions(txns []Transaction, n int) []Transaction {
	out := slices.Clone(txns)
	slices.Reverse(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// ValidateNewAsset checks an asset about to be added to a portfolio already
// holding existing.
func ValidateNewAsset(ticker string, quantity float64, existing []Asset) error {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return ErrEmptyTicker
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for _, a := range existing {
		if NormalizeTicker(a.Ticker) == ticker {
			return ErrDuplicateAsset
		}
	}
	return nil
}

// Share is one holding's part of a portfolio, measured by share count.
type Share struct {
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
	Pct      float64 `json:"pct"`
}

// Composition splits a portfolio by quantity held, in asset order. The API
// carries no per-asset prices, so counts are the only weight available.
// Percentages are zero when nothing is held.
func Composition(assets []Asset) []Share {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(decimal.NewFromFloat(a.Quantity))
	}
	out := make([]Share, 0, len(assets))
	for _, a := range assets {
		s := Share{Ticker: NormalizeTicker(a.Ticker), Quantity: a.Quantity}
		if total.IsPositive() {
			s.Pct = decimal.NewFromFloat(a.Quantity).Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, s)
	}
	return out
}
