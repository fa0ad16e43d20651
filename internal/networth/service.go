// Package networth assembles dashboard views from the portfolio API.
package networth

import (
	"context"
	"fmt"
	"sync"

	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
	"go.uber.org/zap"
)

// API is the subset of the portfolio API the dashboard reads and writes.
type API interface {
	ListUserPortfolios(ctx context.Context) ([]portfolio.UserPortfolio, error)
	ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error)
	CreatePortfolio(ctx context.Context, p client.NewPortfolio) (*portfolio.Portfolio, error)
	ListAssets(ctx context.Context, portfolioID int64) ([]portfolio.Asset, error)
	AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error
	Trade(ctx context.Context, portfolioID int64, ticker string, tt portfolio.TradeType, quantity int) error
	CumulativePrices(ctx context.Context, portfolioID int64) (*portfolio.CumulativePrices, error)
	WeeklyChange(ctx context.Context, portfolioID int64) ([]portfolio.WeeklyChange, error)
	ListTransactions(ctx context.Context) ([]portfolio.Transaction, error)
	ListPortfolioTransactions(ctx context.Context, portfolioID int64) ([]portfolio.Transaction, error)
}

// RecentLimit is how many transactions the overview shows.
const RecentLimit = 5

type Service struct {
	api API
	log *zap.Logger
}

func NewService(api API, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// Chart fetches the value history of every portfolio the user owns in
// parallel and aligns them onto one date axis. Portfolios whose history
// cannot be fetched or is malformed are logged and left out.
func (s *Service) Chart(ctx context.Context) (*series.Chart, error) {
	owned, err := s.api.ListUserPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user portfolios: %w", err)
	}
	portfolios, err := s.api.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	dir := portfolio.NewDirectory()
	for _, p := range portfolios {
		dir.AddPortfolio(p)
	}

	fetched := make([]*series.Series, len(owned))
	var wg sync.WaitGroup
	for i, up := range owned {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := dir.PortfolioName(up.PortfolioID)
			prices, err := s.api.CumulativePrices(ctx, up.PortfolioID)
			if err != nil {
				s.log.Warn("skipping portfolio: fetch history failed",
					zap.Int64("portfolio_id", up.PortfolioID), zap.Error(err))
				return
			}
			sr, err := prices.Series(name)
			if err != nil {
				s.log.Warn("skipping portfolio: malformed history",
					zap.Int64("portfolio_id", up.PortfolioID), zap.Error(err))
				return
			}
			fetched[i] = &sr
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := make([]series.Series, 0, len(fetched))
	for _, sr := range fetched {
		if sr != nil {
			list = append(list, *sr)
		}
	}

	chart, err := series.BuildAlignedChart(list)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}
	for _, r := range chart.Rejected {
		s.log.Warn("skipping portfolio: malformed series", zap.String("portfolio", r.Name), zap.Error(r.Err))
	}
	s.log.Debug("chart built", zap.Int("series", len(chart.Aligned)), zap.Int("dates", len(chart.Axis)))
	return chart, nil
}
