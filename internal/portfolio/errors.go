package portfolio

import "errors"

var (
	ErrEmptyTicker        = errors.New("ticker is required")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrDuplicateAsset     = errors.New("asset already exists in portfolio")
	ErrInvalidTradeType   = errors.New("transaction type must be BUY or SELL")
	ErrEmptyPortfolioName = errors.New("portfolio name is required")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
)
