package quotes

import (
	"strings"
	"unicode"

	"github.com/nzai/dayk/constants"
)

// Company define listed security
type Company struct {
	Code string // yahoo ticker, eg: 2330.TW
	Name string
}

// ParseRecord parse universe record "code&name", only the first separator splits
func ParseRecord(record string) (*Company, error) {
	code, name, found := strings.Cut(record, constants.RecordSeparator)
	if !found {
		return nil, constants.ErrRecordFormat
	}

	if code == "" {
		return nil, constants.ErrEmptyTicker
	}

	return &Company{Code: code, Name: name}, nil
}

// Record encode company to universe record
func (c Company) Record() string {
	return c.Code + constants.RecordSeparator + c.Name
}

// SafeName return name with only letters, digits, spaces, underscores and hyphens
func (c Company) SafeName() string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}

		switch r {
		case ' ', '_', '-':
			return r
		}

		return -1
	}, c.Name))
}

// FileName return cache file name of company series
func (c Company) FileName() string {
	return c.Code + "_" + c.SafeName() + constants.CacheFileExt
}

// CompanyList sortable company list
type CompanyList []*Company

func (l CompanyList) Len() int {
	return len(l)
}

func (l CompanyList) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

func (l CompanyList) Less(i, j int) bool {
	if l[i].Code != l[j].Code {
		return l[i].Code < l[j].Code
	}

	return l[i].Name < l[j].Name
}

// Records encode companies to universe records
func (l CompanyList) Records() []string {
	records := make([]string, 0, len(l))
	for _, company := range l {
		records = append(records, company.Record())
	}

	return records
}
