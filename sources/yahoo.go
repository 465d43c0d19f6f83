package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/dayk/quotes"
	"github.com/nzai/dayk/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// YahooEndpoint define yahoo finance chart api root
const YahooEndpoint = "https://query1.finance.yahoo.com"

// YahooFinance yahoo finance source
type YahooFinance struct {
	endpoint string
	lookback string
	timeout  time.Duration
	limiter  *rate.Limiter
}

// NewYahooFinance create yahoo finance source, ratePerSecond <= 0 disables the limiter
func NewYahooFinance(endpoint, lookback string, timeout time.Duration, ratePerSecond float64) *YahooFinance {
	if endpoint == "" {
		endpoint = YahooEndpoint
	}

	yahoo := &YahooFinance{
		endpoint: endpoint,
		lookback: lookback,
		timeout:  timeout,
	}

	if ratePerSecond > 0 {
		yahoo.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}

	return yahoo
}

func (yahoo YahooFinance) chartURL(ticker string) string {
	query := url.Values{}
	query.Set("range", yahoo.lookback)
	query.Set("interval", "1d")
	query.Set("events", "div|split")
	query.Set("includeAdjustedClose", "true")

	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", yahoo.endpoint, url.PathEscape(ticker), query.Encode())
}

// History query daily history of ticker, one attempt only
func (yahoo YahooFinance) History(ctx context.Context, ticker string) (quotes.Series, error) {
	if yahoo.limiter != nil {
		err := yahoo.limiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	chartURL := yahoo.chartURL(ticker)
	code, buffer, err := utils.DownloadBytes(ctx, chartURL, nil, yahoo.timeout)
	if err != nil {
		zap.L().Debug("download yahoo chart failed", zap.Error(err), zap.String("ticker", ticker))
		return nil, err
	}

	switch code {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", ticker, ErrSymbolNotFound)
	default:
		return nil, fmt.Errorf("unexpected response status (%d)%s", code, http.StatusText(code))
	}

	// parse json
	quote := new(quotes.YahooQuote)
	err = sonic.Unmarshal(buffer, quote)
	if err != nil {
		zap.L().Warn("unmarshal yahoo chart failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.ByteString("json", buffer))
		return nil, err
	}

	// validate response json
	err = quote.Validate()
	if err != nil {
		if errors.Is(err, quotes.ErrYahooSymbolNotFound) {
			return nil, fmt.Errorf("%s: %w", ticker, ErrSymbolNotFound)
		}

		zap.L().Warn("yahoo chart validate failed", zap.Error(err), zap.String("ticker", ticker))
		return nil, err
	}

	return quote.ToSeries(), nil
}
