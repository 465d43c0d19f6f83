package reports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"go.uber.org/zap"
)

const (
	tickerColumn   = "Ticker"
	fullNameColumn = "Full_Name"
)

// ErrTickerColumn results table without ticker column
var ErrTickerColumn = errors.New("results table has no Ticker column")

// Row results table row
type Row struct {
	Ticker   string
	FullName string
	Values   map[string]string
}

// Name return display name, ticker when full name is empty
func (r Row) Name() string {
	if r.FullName == "" {
		return r.Ticker
	}

	return r.FullName
}

// Value return numeric value of column, false when absent or not a number
func (r Row) Value(column string) (float64, bool) {
	text, found := r.Values[column]
	if !found {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) {
		return 0, false
	}

	return value, true
}

// Table results table produced by the analysis step
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn check table has column
func (t Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}

	return false
}

// Top return at most n rows by column descending, rows without value go last.
// The sort is stable, false when column is absent.
func (t Table) Top(column string, n int) ([]Row, bool) {
	if !t.HasColumn(column) {
		return nil, false
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := rows[i].Value(column)
		vj, okj := rows[j].Value(column)
		if oki != okj {
			return oki
		}

		return vi > vj
	})

	if len(rows) > n {
		rows = rows[:n]
	}

	return rows, true
}

// NewTable create table from records, the first record is header
func NewTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return &Table{}, nil
	}

	columns := make([]string, len(records[0]))
	for index, column := range records[0] {
		columns[index] = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
	}

	table := &Table{Columns: columns}
	if !table.HasColumn(tickerColumn) {
		return nil, ErrTickerColumn
	}

	for _, record := range records[1:] {
		row := Row{Values: make(map[string]string, len(columns))}
		for index, column := range columns {
			if index < len(record) {
				row.Values[column] = record[index]
			}
		}

		row.Ticker = strings.TrimSpace(row.Values[tickerColumn])
		if row.Ticker == "" {
			continue
		}
		row.FullName = strings.TrimSpace(row.Values[fullNameColumn])

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// LoadTable load results table from .csv or .xlsx file
func LoadTable(path string) (*Table, error) {
	var records [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			zap.L().Error("open results table failed", zap.Error(err), zap.String("path", path))
			return nil, err
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		records, err = reader.ReadAll()
		if err != nil {
			zap.L().Error("read results table failed", zap.Error(err), zap.String("path", path))
			return nil, err
		}
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			zap.L().Error("open results workbook failed", zap.Error(err), zap.String("path", path))
			return nil, err
		}

		records = f.GetRows(f.GetSheetName(1))
	default:
		return nil, fmt.Errorf("unsupported results table: %s", path)
	}

	return NewTable(records)
}
