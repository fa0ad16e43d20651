package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
	"github.com/simonvc/networth/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDashboard struct {
	chart    *series.Chart
	chartErr error
	trades   []string
}

func (d *stubDashboard) Chart(context.Context) (*series.Chart, error) { return d.chart, d.chartErr }

func (d *stubDashboard) Overview(context.Context) (*networth.Overview, error) {
	v := 12.5
	return &networth.Overview{Rows: []networth.Row{{Portfolio: portfolio.Portfolio{ID: 1, Name: "ISA"}, Value: &v}}}, nil
}

func (d *stubDashboard) Portfolio(_ context.Context, id int64) (*networth.PortfolioView, error) {
	if id != 1 {
		return nil, fmt.Errorf("%w: %d", portfolio.ErrPortfolioNotFound, id)
	}
	return &networth.PortfolioView{Portfolio: portfolio.Portfolio{ID: 1, Name: "ISA"}}, nil
}

func (d *stubDashboard) CreatePortfolio(_ context.Context, np client.NewPortfolio) (*portfolio.Portfolio, error) {
	return &portfolio.Portfolio{ID: 2, Name: np.Name}, nil
}

func (d *stubDashboard) AddAsset(_ context.Context, _ int64, ticker string, _ float64) error {
	if ticker == "AAPL" {
		return portfolio.ErrDuplicateAsset
	}
	return nil
}

func (d *stubDashboard) Trade(_ context.Context, _ int64, ticker, tradeType string, _ int) error {
	if _, err := portfolio.ParseTradeType(tradeType); err != nil {
		return err
	}
	d.trades = append(d.trades, tradeType+" "+ticker)
	return nil
}

type stubSnapshots struct{ snaps []store.Snapshot }

func (s stubSnapshots) List(context.Context, int) ([]store.Snapshot, error) { return s.snaps, nil }

func (s stubSnapshots) Get(_ context.Context, id string) (*store.Snapshot, error) {
	return nil, store.ErrSnapshotNotFound
}

func newTestServer(t *testing.T, d *stubDashboard) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(d, stubSnapshots{}, "", zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestServer_Chart(t *testing.T) {
	c, err := series.BuildAlignedChart([]series.Series{
		{Name: "ISA", Samples: []series.Sample{{Date: "2024-01-01", Value: 10}}},
		{Name: "Pension", Samples: []series.Sample{{Date: "2024-02-01", Value: 20}}},
		{Name: "Broken", Samples: []series.Sample{{Date: "bad", Value: 1}}},
	})
	require.NoError(t, err)
	srv := newTestServer(t, &stubDashboard{chart: c})

	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/chart", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"labels": ["2024-01-01", "2024-02-01"],
		"datasets": [
			{"label": "ISA", "data": [10, 10]},
			{"label": "Pension", "data": [null, 20]}
		],
		"rejected": ["Broken"]
	}`, body)
}

func TestServer_ChartAxisMismatch(t *testing.T) {
	srv := newTestServer(t, &stubDashboard{chartErr: fmt.Errorf("build chart: %w", series.ErrAxisMismatch)})

	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/chart", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "not present in axis")
}

func TestServer_ChartUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &stubDashboard{chartErr: errors.New("list portfolios: server error (500)")})

	status, _ := do(t, http.MethodGet, srv.URL+"/api/v1/chart", "")
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestServer_Portfolio(t *testing.T) {
	srv := newTestServer(t, &stubDashboard{})

	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/portfolios/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"name":"ISA"`)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/portfolios/9", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/portfolios/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_Mutations(t *testing.T) {
	d := &stubDashboard{}
	srv := newTestServer(t, d)

	status, _ := do(t, http.MethodPost, srv.URL+"/api/v1/portfolios/1/assets", `{"ticker":"MSFT","quantity":2}`)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/v1/portfolios/1/assets", `{"ticker":"AAPL","quantity":2}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/v1/portfolios/1/trades", `{"ticker":"MSFT","transaction_type":"SELL","quantity":1}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"SELL MSFT"}, d.trades)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/v1/portfolios/1/trades", `{"ticker":"MSFT","transaction_type":"HOLD","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, http.MethodPost, srv.URL+"/api/v1/portfolios", `{"name":"Kids","exchange":"LSE","ticker":"VWRL","quantity":1}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"name":"Kids"`)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/v1/portfolios", `{`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_Snapshots(t *testing.T) {
	srv := newTestServer(t, &stubDashboard{})

	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/snapshots?limit=5", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/snapshots?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/snapshots/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, &stubDashboard{})
	status, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}
