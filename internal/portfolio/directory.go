package portfolio

import "strconv"

// Directory resolves portfolio and asset ids to display names. It is built per
// request from freshly fetched data.
type Directory struct {
	portfolios map[int64]string
	tickers    map[int64]string
}

func NewDirectory() *Directory {
	return &Directory{
		portfolios: make(map[int64]string),
		tickers:    make(map[int64]string),
	}
}

func (d *Directory) AddPortfolio(p Portfolio) { d.portfolios[p.ID] = p.Name }

func (d *Directory) AddAssets(assets []Asset) {
	for _, a := range assets {
		d.tickers[a.ID] = NormalizeTicker(a.Ticker)
	}
}

// PortfolioName falls back to the numeric id for unknown portfolios.
func (d *Directory) PortfolioName(id int64) string {
	if n, ok := d.portfolios[id]; ok {
		return n
	}
	return "#" + strconv.FormatInt(id, 10)
}

// Ticker returns a dash placeholder for unknown assets.
func (d *Directory) Ticker(assetID int64) string {
	if t, ok := d.tickers[assetID]; ok && t != "" {
		return t
	}
	return "-"
}
