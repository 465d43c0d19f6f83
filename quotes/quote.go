package quotes

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nzai/dayk/constants"
	"go.uber.org/zap"
)

var (
	// utf8BOM lets spreadsheet tools detect the encoding of cache files
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// SeriesHeader cache file columns, lower case
	SeriesHeader = []string{"date", "open", "high", "low", "close", "volume", "dividends", "stock splits"}
)

// Quote daily quote
type Quote struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	Dividend float64   `json:"dividends"`
	Split    float64   `json:"stock_splits"`
}

// Equal check quote is equal
func (q Quote) Equal(s Quote) error {
	if !q.Date.Equal(s.Date) {
		return fmt.Errorf("quote date %s is different from %s", q.Date, s.Date)
	}

	if q.Open != s.Open || q.High != s.High || q.Low != s.Low || q.Close != s.Close {
		return fmt.Errorf("quote prices %v are different from %v", q, s)
	}

	if q.Volume != s.Volume {
		return fmt.Errorf("quote volume %d is different from %d", q.Volume, s.Volume)
	}

	if q.Dividend != s.Dividend || q.Split != s.Split {
		return fmt.Errorf("quote events %v are different from %v", q, s)
	}

	return nil
}

func (q Quote) record() []string {
	return []string{
		q.Date.Format(constants.DateTimePattern),
		formatFloat(q.Open),
		formatFloat(q.High),
		formatFloat(q.Low),
		formatFloat(q.Close),
		strconv.FormatInt(q.Volume, 10),
		formatFloat(q.Dividend),
		formatFloat(q.Split),
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Series daily quote series, one row per trading day
type Series []Quote

// Encode encode series as utf-8 csv with bom
func (s Series) Encode(w io.Writer) error {
	_, err := w.Write(utf8BOM)
	if err != nil {
		zap.L().Error("write bom failed", zap.Error(err))
		return err
	}

	cw := csv.NewWriter(w)
	err = cw.Write(SeriesHeader)
	if err != nil {
		zap.L().Error("write series header failed", zap.Error(err))
		return err
	}

	for _, quote := range s {
		err = cw.Write(quote.record())
		if err != nil {
			zap.L().Error("write quote failed", zap.Error(err), zap.Time("date", quote.Date))
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// Decode decode series from csv written by Encode
func (s *Series) Decode(r io.Reader) error {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	records, err := csv.NewReader(br).ReadAll()
	if err != nil {
		zap.L().Error("read series csv failed", zap.Error(err))
		return err
	}

	if len(records) == 0 {
		*s = Series{}
		return nil
	}

	columns := make(map[string]int, len(records[0]))
	for index, column := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(column))] = index
	}

	for _, column := range SeriesHeader {
		if _, found := columns[column]; !found {
			return fmt.Errorf("series column %s not found", column)
		}
	}

	series := make(Series, 0, len(records)-1)
	for line, record := range records[1:] {
		quote, err := parseQuote(record, columns)
		if err != nil {
			zap.L().Error("parse quote failed", zap.Error(err), zap.Int("line", line+2), zap.Strings("record", record))
			return err
		}

		series = append(series, *quote)
	}

	*s = series

	return nil
}

func parseQuote(record []string, columns map[string]int) (*Quote, error) {
	date, err := time.Parse(constants.DateTimePattern, record[columns["date"]])
	if err != nil {
		return nil, err
	}

	floats := make(map[string]float64, 6)
	for _, column := range []string{"open", "high", "low", "close", "dividends", "stock splits"} {
		value, err := strconv.ParseFloat(record[columns[column]], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s failed: %w", column, err)
		}
		floats[column] = value
	}

	volume, err := strconv.ParseInt(record[columns["volume"]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse volume failed: %w", err)
	}

	return &Quote{
		Date:     date,
		Open:     floats["open"],
		High:     floats["high"],
		Low:      floats["low"],
		Close:    floats["close"],
		Volume:   volume,
		Dividend: floats["dividends"],
		Split:    floats["stock splits"],
	}, nil
}
