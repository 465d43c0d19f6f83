package reports

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Market
	}{
		{"US", MarketUS},
		{"us-share", MarketUS},
		{"美國", MarketUS},
		{"HK", MarketHK},
		{"hk-share", MarketHK},
		{"香港", MarketHK},
		{"台灣", MarketTW},
		{"tw-share", MarketTW},
		{"", MarketTW},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Classify(tt.label); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarket_URL(t *testing.T) {
	tests := []struct {
		market Market
		ticker string
		want   string
	}{
		{MarketUS, "AAPL", "https://stockcharts.com/sc3/ui/?s=AAPL"},
		{MarketHK, "700.HK", "https://www.aastocks.com/tc/stocks/quote/quick-quote.aspx?symbol=00700"},
		{MarketHK, "0005.HK", "https://www.aastocks.com/tc/stocks/quote/quick-quote.aspx?symbol=00005"},
		{MarketHK, "09988.HK", "https://www.aastocks.com/tc/stocks/quote/quick-quote.aspx?symbol=09988"},
		{MarketTW, "2330.TW", "https://www.wantgoo.com/stock/2330/technical-chart"},
		{MarketTW, "6488.TWO", "https://www.wantgoo.com/stock/6488/technical-chart"},
		{MarketTW, "0050", "https://www.wantgoo.com/stock/0050/technical-chart"},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			if got := tt.market.URL(tt.ticker); got != tt.want {
				t.Errorf("Market.URL() = %s, want %s", got, tt.want)
			}
		})
	}
}
