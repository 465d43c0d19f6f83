package quotes

import (
	"errors"
	"time"

	"github.com/nzai/dayk/utils"
	"go.uber.org/zap"
)

var (
	// YahooNotFoundCode define errors raised by yahoo finace on code not found
	YahooNotFoundCode = "Not Found"
	// ErrYahooSymbolNotFound define errors raised by yahoo finace on symbol not found
	ErrYahooSymbolNotFound = errors.New("symbol not found")
)

// YahooQuote define yahoo finance daily chart response structure
type YahooQuote struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				Symbol               string `json:"symbol"`
				ExchangeName         string `json:"exchangeName"`
				InstrumentType       string `json:"instrumentType"`
				GMTOffset            int    `json:"gmtoffset"`
				Timezone             string `json:"timezone"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				DataGranularity      string `json:"dataGranularity"`
				Range                string `json:"range"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]YahooDividend `json:"dividends"`
				Splits    map[string]YahooSplit    `json:"splits"`
			} `json:"events"`
			Indicators struct {
				Quotes []struct {
					Open   []*float64 `json:"open"`
					Close  []*float64 `json:"close"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Err *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Validate validate response is valid
func (q YahooQuote) Validate() error {
	// yahoo error
	if q.Chart.Err != nil {
		if q.Chart.Err.Code == YahooNotFoundCode {
			return ErrYahooSymbolNotFound
		}
		return errors.New(q.Chart.Err.Description)
	}

	if len(q.Chart.Result) == 0 {
		return errors.New("quote.Chart.Result is null")
	}

	result := q.Chart.Result[0]

	// no trading days in range
	if len(result.Timestamp) == 0 {
		return nil
	}

	if len(result.Indicators.Quotes) == 0 {
		return errors.New("quote.Chart.Result[0].Indicators.Quotes is null")
	}

	_quote := result.Indicators.Quotes[0]

	// quotes count mismatch
	if len(result.Timestamp) != len(_quote.Open) ||
		len(result.Timestamp) != len(_quote.Close) ||
		len(result.Timestamp) != len(_quote.High) ||
		len(result.Timestamp) != len(_quote.Low) ||
		len(result.Timestamp) != len(_quote.Volume) {
		return errors.New("quotes count dismatch")
	}

	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) != len(result.Timestamp) {
		return errors.New("adjclose count dismatch")
	}

	return nil
}

// Location return exchange location of the chart
func (q YahooQuote) Location() *time.Location {
	if len(q.Chart.Result) == 0 {
		return time.UTC
	}

	meta := q.Chart.Result[0].Meta
	if meta.ExchangeTimezoneName != "" {
		location, err := time.LoadLocation(meta.ExchangeTimezoneName)
		if err == nil {
			return location
		}

		zap.L().Warn("load exchange location failed",
			zap.Error(err),
			zap.String("timezone", meta.ExchangeTimezoneName))
	}

	return time.FixedZone(meta.Timezone, meta.GMTOffset)
}

// ToSeries convert a validated response to daily series.
// Prices are adjusted by adjclose/close, rows without any price are dropped.
func (q YahooQuote) ToSeries() Series {
	if len(q.Chart.Result) == 0 || len(q.Chart.Result[0].Timestamp) == 0 {
		return Series{}
	}

	location := q.Location()
	result := q.Chart.Result[0]
	qs := result.Indicators.Quotes[0]

	var adjCloses []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	dividends := make(map[string]float64, len(result.Events.Dividends))
	for _, dividend := range result.Events.Dividends {
		dividends[dayKey(dividend.Date, location)] += dividend.Amount
	}

	splits := make(map[string]float64, len(result.Events.Splits))
	for _, split := range result.Events.Splits {
		if split.Denominator == 0 {
			continue
		}
		splits[dayKey(split.Date, location)] = split.Numerator / split.Denominator
	}

	series := make(Series, 0, len(result.Timestamp))
	for index, ts := range result.Timestamp {
		// ignore days without quote
		if qs.Open[index] == nil && qs.High[index] == nil && qs.Low[index] == nil && qs.Close[index] == nil {
			continue
		}

		ratio := 1.0
		if adjCloses != nil && adjCloses[index] != nil && qs.Close[index] != nil && *qs.Close[index] != 0 {
			ratio = *adjCloses[index] / *qs.Close[index]
		}

		at := time.Unix(ts, 0).In(location)
		key := at.Format("20060102")

		series = append(series, Quote{
			Date:     utils.DateZero(at, location),
			Open:     value(qs.Open[index]) * ratio,
			High:     value(qs.High[index]) * ratio,
			Low:      value(qs.Low[index]) * ratio,
			Close:    value(qs.Close[index]) * ratio,
			Volume:   volume(qs.Volume[index]),
			Dividend: dividends[key],
			Split:    splits[key],
		})
	}

	return series
}

func dayKey(timestamp int64, location *time.Location) string {
	return time.Unix(timestamp, 0).In(location).Format("20060102")
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func volume(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// YahooDividend define stock dividend
type YahooDividend struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// YahooSplit define stock split
type YahooSplit struct {
	Date        int64   `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
	Ratio       string  `json:"splitRatio"`
}
