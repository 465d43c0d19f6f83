package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nzai/dayk/utils"
)

const yahooChart = `{"chart":{"result":[{"meta":{"currency":"TWD","symbol":"2330.TW","exchangeName":"TAI","gmtoffset":28800,"timezone":"CST","exchangeTimezoneName":"Asia/Taipei","dataGranularity":"1d","range":"2y"},
"timestamp":[1704157200,1704243600,1704330000],
"events":{"dividends":{"1704243600":{"amount":2.5,"date":1704243600}},"splits":{"1704157200":{"date":1704157200,"numerator":2,"denominator":1,"splitRatio":"2:1"}}},
"indicators":{"quote":[{"open":[98,101,null],"high":[102,104,null],"low":[96,100,null],"close":[100,102,null],"volume":[1000,2000,null]}],
"adjclose":[{"adjclose":[50,102,null]}]}}],"error":null}}`

const yahooNotFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

const yahooEmpty = `{"chart":{"result":[{"meta":{"symbol":"9999.TW","gmtoffset":28800,"timezone":"CST","exchangeTimezoneName":"Asia/Taipei"},"indicators":{"quote":[{}],"adjclose":[{}]}}],"error":null}}`

func newYahooServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" || r.URL.Query().Get("range") != "2y" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch r.URL.Path {
		case "/v8/finance/chart/2330.TW":
			w.Write([]byte(yahooChart))
		case "/v8/finance/chart/0000.TW":
			w.Write([]byte(yahooNotFound))
		case "/v8/finance/chart/9999.TW":
			w.Write([]byte(yahooEmpty))
		case "/v8/finance/chart/5555.TW":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func TestYahooFinance_History(t *testing.T) {
	server := newYahooServer(t)
	yahoo := NewYahooFinance(server.URL, "2y", time.Second*5, 0)

	series, err := yahoo.History(context.Background(), "2330.TW")
	if err != nil {
		t.Fatalf("YahooFinance.History() error = %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("YahooFinance.History() rows = %d, want 2", len(series))
	}

	location := utils.TaipeiLocation()
	first, second := series[0], series[1]

	if !first.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, location)) {
		t.Errorf("first date = %s", first.Date)
	}

	// adjclose/close = 0.5 on the first day
	if first.Open != 49 || first.High != 51 || first.Low != 48 || first.Close != 50 {
		t.Errorf("first prices not adjusted: %+v", first)
	}

	if first.Volume != 1000 || first.Split != 2 || first.Dividend != 0 {
		t.Errorf("first volume or events = %+v", first)
	}

	if !second.Date.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, location)) {
		t.Errorf("second date = %s", second.Date)
	}

	if second.Close != 102 || second.Dividend != 2.5 || second.Split != 0 {
		t.Errorf("second quote = %+v", second)
	}
}

func TestYahooFinance_HistoryErrors(t *testing.T) {
	server := newYahooServer(t)
	yahoo := NewYahooFinance(server.URL, "2y", time.Second*5, 10)

	tests := []struct {
		name     string
		ticker   string
		notFound bool
	}{
		{"chart error", "0000.TW", true},
		{"http 404", "1234.TW", true},
		{"http 500", "5555.TW", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yahoo.History(context.Background(), tt.ticker)
			if err == nil {
				t.Fatalf("YahooFinance.History() error = nil")
			}

			if errors.Is(err, ErrSymbolNotFound) != tt.notFound {
				t.Errorf("YahooFinance.History() error = %v, not found %v", err, tt.notFound)
			}
		})
	}
}

func TestYahooFinance_HistoryEmpty(t *testing.T) {
	server := newYahooServer(t)
	yahoo := NewYahooFinance(server.URL, "2y", time.Second*5, 0)

	series, err := yahoo.History(context.Background(), "9999.TW")
	if err != nil {
		t.Fatalf("YahooFinance.History() error = %v", err)
	}

	if len(series) != 0 {
		t.Errorf("YahooFinance.History() rows = %d, want 0", len(series))
	}
}
