package exchanges

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/nzai/dayk/quotes"
	"github.com/nzai/dayk/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

const (
	codeHeader = "有價證券代號"
	nameHeader = "有價證券名稱"
	// headerEcho rows whose code contains it are repeated headers
	headerEcho = "有價證券"
)

// ErrColumnNotFound registry table lacks code or name column
var ErrColumnNotFound = errors.New("registry column not found")

func newSegment(name, market, issueType, suffix string) Segment {
	return Segment{
		Name:   name,
		URL:    fmt.Sprintf(isinURL, market, issueType),
		Suffix: suffix,
	}
}

// Twse define taiwan stock exchange isin registry
type Twse struct {
	segments []Segment
	timeout  time.Duration
	parallel int
}

// NewTwse create taiwan stock exchange registry lister
func NewTwse(timeout time.Duration, parallel int, segments ...Segment) *Twse {
	if len(segments) == 0 {
		segments = All()
	}

	if parallel <= 0 {
		parallel = 1
	}

	return &Twse{
		segments: segments,
		timeout:  timeout,
		parallel: parallel,
	}
}

// Companies get companies of every segment, failed segments are skipped
func (s Twse) Companies(ctx context.Context) quotes.CompanyList {
	results := make([][]*quotes.Company, len(s.segments))

	var g errgroup.Group
	g.SetLimit(s.parallel)
	for index, segment := range s.segments {
		index, segment := index, segment
		g.Go(func() error {
			companies, err := s.segmentCompanies(ctx, segment)
			if err != nil {
				zap.L().Warn("list segment companies failed",
					zap.Error(err),
					zap.String("segment", segment.Name),
					zap.String("url", segment.URL))
				return nil
			}

			zap.L().Info("list segment companies success",
				zap.String("segment", segment.Name),
				zap.Int("companies", len(companies)))

			results[index] = companies
			return nil
		})
	}
	g.Wait()

	seen := make(map[string]bool)
	var list quotes.CompanyList
	for _, companies := range results {
		for _, company := range companies {
			record := company.Record()
			if seen[record] {
				continue
			}

			seen[record] = true
			list = append(list, company)
		}
	}
	sort.Sort(list)

	return list
}

// Universe get universe records of every segment
func (s Twse) Universe(ctx context.Context) []string {
	return s.Companies(ctx).Records()
}

func (s Twse) segmentCompanies(ctx context.Context, segment Segment) ([]*quotes.Company, error) {
	code, buffer, err := utils.DownloadBytes(ctx, segment.URL, nil, s.timeout)
	if err != nil {
		return nil, err
	}

	if code != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status (%d)%s", code, http.StatusText(code))
	}

	return parseTable(decode(buffer), segment.Suffix)
}

// decode return utf-8 reader, pages not in utf-8 are big5 (ms950)
func decode(buffer []byte) io.Reader {
	if utf8.Valid(buffer) {
		return bytes.NewReader(buffer)
	}

	return transform.NewReader(bytes.NewReader(buffer), traditionalchinese.Big5.NewDecoder())
}

// parseTable parse first table of registry page, the first row is header
func parseTable(r io.Reader, suffix string) ([]*quotes.Company, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("registry table not found")
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, errors.New("registry table is empty")
	}

	codeIndex, nameIndex := -1, -1
	rows.First().Find("td, th").Each(func(index int, cell *goquery.Selection) {
		switch strings.TrimSpace(cell.Text()) {
		case codeHeader:
			codeIndex = index
		case nameHeader:
			nameIndex = index
		}
	})

	if codeIndex < 0 || nameIndex < 0 {
		return nil, ErrColumnNotFound
	}

	var companies []*quotes.Company
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() <= codeIndex || cells.Length() <= nameIndex {
			return
		}

		code := strings.TrimSpace(cells.Eq(codeIndex).Text())
		if code == "" || strings.Contains(code, headerEcho) {
			return
		}

		companies = append(companies, &quotes.Company{
			Code: code + suffix,
			Name: strings.TrimSpace(cells.Eq(nameIndex).Text()),
		})
	})

	return companies, nil
}
