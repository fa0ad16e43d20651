package networth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/portfolio"
	"go.uber.org/zap"
)

// Row is one line of the portfolio table. Nil fields could not be fetched.
type Row struct {
	Portfolio    portfolio.Portfolio `json:"portfolio"`
	Value        *float64            `json:"value"`
	WeeklyChange *float64            `json:"weekly_change"`
}

// TransactionLine is a transaction labelled for display.
type TransactionLine struct {
	Portfolio string              `json:"portfolio"`
	Ticker    string              `json:"ticker"`
	Type      portfolio.TradeType `json:"type"`
	Quantity  float64             `json:"quantity"`
	DateTime  time.Time           `json:"datetime"`
}

type Overview struct {
	Rows     []Row             `json:"rows"`
	NetWorth decimal.Decimal   `json:"net_worth"`
	Recent   []TransactionLine `json:"recent"`
}

// Overview builds the portfolio table, the total net worth and the most recent
// transactions across all portfolios.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	portfolios, err := s.api.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}

	dir := portfolio.NewDirectory()
	rows := make([]Row, len(portfolios))
	assets := make([][]portfolio.Asset, len(portfolios))

	var wg sync.WaitGroup
	for i, p := range portfolios {
		dir.AddPortfolio(p)
		rows[i].Portfolio = p
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows[i].Value = s.latestValue(ctx, p.ID)
			rows[i].WeeklyChange = s.averageChange(ctx, p.ID)
			a, err := s.api.ListAssets(ctx, p.ID)
			if err != nil {
				s.log.Warn("fetch assets failed", zap.Int64("portfolio_id", p.ID), zap.Error(err))
				return
			}
			assets[i] = a
		}()
	}
	wg.Wait()

	var latest []float64
	for i, r := range rows {
		dir.AddAssets(assets[i])
		if r.Value != nil {
			latest = append(latest, *r.Value)
		}
	}

	ov := &Overview{Rows: rows, NetWorth: portfolio.NetWorth(latest)}

	txns, err := s.api.ListTransactions(ctx)
	if err != nil {
		s.log.Warn("fetch transactions failed", zap.Error(err))
		return ov, nil
	}
	ov.Recent = label(portfolio.RecentTransactions(txns, RecentLimit), dir)
	return ov, nil
}

func (s *Service) latestValue(ctx context.Context, id int64) *float64 {
	prices, err := s.api.CumulativePrices(ctx, id)
	if err != nil {
		s.log.Warn("fetch portfolio value failed", zap.Int64("portfolio_id", id), zap.Error(err))
		return nil
	}
	h, err := prices.Series(fmt.Sprint(id))
	if err != nil {
		s.log.Warn("malformed portfolio history", zap.Int64("portfolio_id", id), zap.Error(err))
		return nil
	}
	v, ok := portfolio.LatestValue(portfolio.SampleValues(h))
	if !ok {
		return nil
	}
	return &v
}

func (s *Service) averageChange(ctx context.Context, id int64) *float64 {
	changes, err := s.api.WeeklyChange(ctx, id)
	if err != nil {
		s.log.Warn("fetch weekly change failed", zap.Int64("portfolio_id", id), zap.Error(err))
		return nil
	}
	avg, ok := portfolio.AverageChange(changes)
	if !ok {
		return nil
	}
	return &avg
}

func label(txns []portfolio.Transaction, dir *portfolio.Directory) []TransactionLine {
	out := make([]TransactionLine, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionLine{
			Portfolio: dir.PortfolioName(t.PortfolioID),
			Ticker:    dir.Ticker(t.PortfolioAssetID),
			Type:      t.TradeType(),
			Quantity:  t.Quantity,
			DateTime:  t.DateTime,
		})
	}
	return out
}

// Transactions lists transactions across all portfolios newest first, at most
// limit of them (all when limit is negative), labelled with portfolio names
// and tickers.
func (s *Service) Transactions(ctx context.Context, limit int) ([]TransactionLine, error) {
	txns, err := s.api.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	portfolios, err := s.api.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}

	dir := portfolio.NewDirectory()
	assets := make([][]portfolio.Asset, len(portfolios))
	var wg sync.WaitGroup
	for i, p := range portfolios {
		dir.AddPortfolio(p)
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.api.ListAssets(ctx, p.ID)
			if err != nil {
				s.log.Warn("fetch assets failed", zap.Int64("portfolio_id", p.ID), zap.Error(err))
				return
			}
			assets[i] = a
		}()
	}
	wg.Wait()
	for _, a := range assets {
		dir.AddAssets(a)
	}
	return label(portfolio.RecentTransactions(txns, limit), dir), nil
}
