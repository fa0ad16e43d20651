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

// PortfolioView is everything the manage screen shows for one portfolio.
type PortfolioView struct {
	Portfolio     portfolio.Portfolio      `json:"portfolio"`
	Value         *float64                 `json:"value"`
	YearlyChange  *float64                 `json:"yearly_change"`
	WeeklyAverage *float64                 `json:"weekly_average"`
	Weekly        []portfolio.WeeklyChange `json:"weekly"`
	Assets        []portfolio.Asset        `json:"assets"`
	Transactions  []TransactionLine        `json:"transactions"`
	History       *series.Series           `json:"history"`
}

// StockCount is the number of holdings with a weekly change.
func (v *PortfolioView) StockCount() int { return len(v.Weekly) }

func (s *Service) Portfolio(ctx context.Context, id int64) (*PortfolioView, error) {
	portfolios, err := s.api.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	v := &PortfolioView{}
	found := false
	for _, p := range portfolios {
		if p.ID == id {
			v.Portfolio, found = p, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", portfolio.ErrPortfolioNotFound, id)
	}

	var (
		wg    sync.WaitGroup
		txns  []portfolio.Transaction
		txErr error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		changes, err := s.api.WeeklyChange(ctx, id)
		if err != nil {
			s.log.Warn("fetch weekly change failed", zap.Int64("portfolio_id", id), zap.Error(err))
			return
		}
		v.Weekly = changes
		if avg, ok := portfolio.AverageChange(changes); ok {
			v.WeeklyAverage = &avg
		}
	}()
	go func() {
		defer wg.Done()
		prices, err := s.api.CumulativePrices(ctx, id)
		if err != nil {
			s.log.Warn("fetch portfolio history failed", zap.Int64("portfolio_id", id), zap.Error(err))
			return
		}
		h, err := prices.Series(v.Portfolio.Name)
		if err != nil {
			s.log.Warn("malformed portfolio history", zap.Int64("portfolio_id", id), zap.Error(err))
			return
		}
		v.History = &h
		values := portfolio.SampleValues(h)
		if latest, ok := portfolio.LatestValue(values); ok {
			v.Value = &latest
		}
		if yc, ok := portfolio.YearlyChange(values); ok {
			v.YearlyChange = &yc
		}
	}()
	go func() {
		defer wg.Done()
		assets, err := s.api.ListAssets(ctx, id)
		if err != nil {
			s.log.Warn("fetch assets failed", zap.Int64("portfolio_id", id), zap.Error(err))
			return
		}
		v.Assets = assets
	}()
	go func() {
		defer wg.Done()
		txns, txErr = s.api.ListPortfolioTransactions(ctx, id)
	}()
	wg.Wait()

	// Transactions render even without assets; tickers then show as unknown.
	if txErr != nil {
		s.log.Warn("fetch transactions failed", zap.Int64("portfolio_id", id), zap.Error(txErr))
		return v, nil
	}
	dir := portfolio.NewDirectory()
	dir.AddPortfolio(v.Portfolio)
	dir.AddAssets(v.Assets)
	v.Transactions = label(portfolio.RecentTransactions(txns, -1), dir)
	return v, nil
}

// AddAsset adds a new holding after checking it is not already held.
func (s *Service) AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error {
	existing, err := s.api.ListAssets(ctx, portfolioID)
	if err != nil {
		return fmt.Errorf("fetch assets for validation: %w", err)
	}
	if err := portfolio.ValidateNewAsset(ticker, quantity, existing); err != nil {
		return err
	}
	ticker = portfolio.NormalizeTicker(ticker)
	if err := s.api.AddAsset(ctx, portfolioID, ticker, quantity); err != nil {
		return err
	}
	s.log.Info("asset added", zap.Int64("portfolio_id", portfolioID), zap.String("ticker", ticker), zap.Float64("quantity", quantity))
	return nil
}

// Trade records a buy or sell of an existing holding.
func (s *Service) Trade(ctx context.Context, portfolioID int64, ticker, tradeType string, quantity int) error {
	tt, err := portfolio.ParseTradeType(tradeType)
	if err != nil {
		return err
	}
	ticker = portfolio.NormalizeTicker(ticker)
	if ticker == "" {
		return portfolio.ErrEmptyTicker
	}
	if quantity <= 0 {
		return portfolio.ErrInvalidQuantity
	}
	if err := s.api.Trade(ctx, portfolioID, ticker, tt, quantity); err != nil {
		return err
	}
	s.log.Info("trade placed", zap.Int64("portfolio_id", portfolioID), zap.String("ticker", ticker),
		zap.String("type", string(tt)), zap.Int("quantity", quantity))
	return nil
}

// CreatePortfolio creates a portfolio seeded with one holding.
func (s *Service) CreatePortfolio(ctx context.Context, np client.NewPortfolio) (*portfolio.Portfolio, error) {
	if np.Name == "" {
		return nil, portfolio.ErrEmptyPortfolioName
	}
	np.Ticker = portfolio.NormalizeTicker(np.Ticker)
	if np.Ticker == "" {
		return nil, portfolio.ErrEmptyTicker
	}
	if np.Quantity <= 0 {
		return nil, portfolio.ErrInvalidQuantity
	}
	p, err := s.api.CreatePortfolio(ctx, np)
	if err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}
	s.log.Info("portfolio created", zap.Int64("portfolio_id", p.ID), zap.String("name", p.Name))
	return p, nil
}
