package reports

import (
	"fmt"
	"strings"
)

// Market define link convention of a report
type Market int

const (
	// MarketTW taiwan, links to wantgoo
	MarketTW Market = iota
	// MarketUS united states, links to stockcharts
	MarketUS
	// MarketHK hong kong, links to aastocks
	MarketHK
)

// Classify classify market label, us is checked before hk, anything else is taiwan
func Classify(label string) Market {
	upper := strings.ToUpper(label)
	switch {
	case strings.Contains(upper, "US") || strings.Contains(upper, "美國"):
		return MarketUS
	case strings.Contains(upper, "HK") || strings.Contains(upper, "香港"):
		return MarketHK
	default:
		return MarketTW
	}
}

// URL return technical chart url of ticker
func (m Market) URL(ticker string) string {
	switch m {
	case MarketUS:
		return "https://stockcharts.com/sc3/ui/?s=" + ticker
	case MarketHK:
		code := strings.TrimSpace(strings.ReplaceAll(ticker, ".HK", ""))
		if len(code) < 5 {
			code = strings.Repeat("0", 5-len(code)) + code
		}
		return "https://www.aastocks.com/tc/stocks/quote/quick-quote.aspx?symbol=" + code
	default:
		code, _, _ := strings.Cut(ticker, ".")
		return fmt.Sprintf("https://www.wantgoo.com/stock/%s/technical-chart", code)
	}
}

// Destination return chart site name
func (m Market) Destination() string {
	switch m {
	case MarketUS:
		return "StockCharts"
	case MarketHK:
		return "AASTOCKS"
	default:
		return "玩股網"
	}
}
