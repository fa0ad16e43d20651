package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simonvc/networth/internal/portfolio"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) ListUserPortfolios(ctx context.Context) ([]portfolio.UserPortfolio, error) {
	var result []portfolio.UserPortfolio
	if err := c.get(ctx, "/userPortfolio/userPortfolio", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error) {
	var result []portfolio.Portfolio
	if err := c.get(ctx, "/portfolio/portfolio", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// NewPortfolio is a portfolio to create together with its first holding.
type NewPortfolio struct {
	Name     string  `json:"name"`
	Exchange string  `json:"exchange"`
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
}

func (c *Client) CreatePortfolio(ctx context.Context, p NewPortfolio) (*portfolio.Portfolio, error) {
	var result portfolio.Portfolio
	if err := c.post(ctx, "/portfolio/portfolio", p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAssets(ctx context.Context, portfolioID int64) ([]portfolio.Asset, error) {
	var result []portfolio.Asset
	if err := c.get(ctx, "/portfolio/asset/"+id(portfolioID), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error {
	body := map[string]any{
		"portfolio_id": portfolioID,
		"ticker":       ticker,
		"quantity":     quantity,
	}
	var result mutationResult
	if err := c.post(ctx, "/portfolio/asset", body, &result); err != nil {
		return err
	}
	return result.err("add asset")
}

// Trade buys or sells quantity units of ticker in a portfolio.
func (c *Client) Trade(ctx context.Context, portfolioID int64, ticker string, tt portfolio.TradeType, quantity int) error {
	body := map[string]any{
		"portfolio_id":     portfolioID,
		"ticker":           ticker,
		"transaction_type": string(tt),
		"quantity":         quantity,
	}
	var result mutationResult
	if err := c.patch(ctx, "/portfolio/asset", body, &result); err != nil {
		return err
	}
	return result.err("trade")
}

func (c *Client) CumulativePrices(ctx context.Context, portfolioID int64) (*portfolio.CumulativePrices, error) {
	var result portfolio.CumulativePrices
	if err := c.get(ctx, "/portfolio/portfolio/getCumulativePricesforPortfolio/"+id(portfolioID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) WeeklyChange(ctx context.Context, portfolioID int64) ([]portfolio.WeeklyChange, error) {
	var result []portfolio.WeeklyChange
	if err := c.get(ctx, "/portfolio/portfolio/getWeeklyChange/"+id(portfolioID), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]portfolio.Transaction, error) {
	var result []portfolio.Transaction
	if err := c.get(ctx, "/transaction/transaction", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListPortfolioTransactions(ctx context.Context, portfolioID int64) ([]portfolio.Transaction, error) {
	var result []portfolio.Transaction
	if err := c.get(ctx, "/transaction/transactionByPortfolio/"+id(portfolioID), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping checks that the API is reachable and accepts the token. Any error
// status, including 401, fails the ping.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/portfolio/portfolio", nil)
	if err != nil {
		return err
	}
	return c.doRequest(req, nil)
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

type mutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r mutationResult) err(op string) error {
	if r.Success {
		return nil
	}
	if r.Error == "" {
		return fmt.Errorf("%s failed: unknown error", op)
	}
	return fmt.Errorf("%s failed: %s", op, r.Error)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doRequest(req, result)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, http.MethodPatch, path, body, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, http.MethodPost, path, body, result)
}

func (c *Client) send(ctx context.Context, method, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil {
			if apiErr.Error != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
			}
			if apiErr.Message != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Message)
			}
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
