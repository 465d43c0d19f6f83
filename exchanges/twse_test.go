package exchanges

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

const listedPage = `<html><head><meta http-equiv="Content-Type" content="text/html; charset=MS950"></head><body>
<table class="h4">
<tr><td>頁面編號</td><td>國際證券辨識號碼(ISIN Code)</td><td>有價證券代號</td><td>有價證券名稱</td><td>市場別</td></tr>
<tr><td>1</td><td>TW0002330008</td><td>2330</td><td>台積電</td><td>上市</td></tr>
<tr><td>2</td><td>TW0002317005</td><td> 2317 </td><td> 鴻海 </td><td>上市</td></tr>
<tr><td>3</td><td></td><td></td><td>空白</td><td>上市</td></tr>
<tr><td>頁面編號</td><td>國際證券辨識號碼(ISIN Code)</td><td>有價證券代號</td><td>有價證券名稱</td><td>市場別</td></tr>
<tr><td>4</td><td>TW0000050004</td><td>0050</td><td>元大台灣50</td><td>上市</td></tr>
</table>
<table><tr><td>有價證券代號</td><td>有價證券名稱</td></tr><tr><td>9999</td><td>第二張表</td></tr></table>
</body></html>`

const otcPage = `<html><body><table>
<tr><th>有價證券代號</th><th>有價證券名稱</th></tr>
<tr><td>6488</td><td>環球晶</td></tr>
<tr><td>2330</td><td>台積電</td></tr>
</table></body></html>`

const noColumnPage = `<html><body><table><tr><td>代號</td><td>名稱</td></tr><tr><td>1234</td><td>無欄位</td></tr></table></body></html>`

func big5(t *testing.T, s string) string {
	t.Helper()

	encoded, _, err := transform.String(traditionalchinese.Big5.NewEncoder(), s)
	if err != nil {
		t.Fatalf("encode big5 failed: %v", err)
	}

	return encoded
}

func TestTwse_Companies(t *testing.T) {
	listed := big5(t, listedPage)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listed":
			w.Write([]byte(listed))
		case "/otc":
			w.Write([]byte(otcPage))
		case "/dup":
			w.Write([]byte(otcPage))
		case "/columns":
			w.Write([]byte(noColumnPage))
		case "/slow":
			time.Sleep(time.Millisecond * 500)
			w.Write([]byte(otcPage))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	twse := NewTwse(time.Millisecond*200, 4,
		Segment{Name: "listed", URL: server.URL + "/listed", Suffix: ".TW"},
		Segment{Name: "otc", URL: server.URL + "/otc", Suffix: ".TWO"},
		Segment{Name: "dup", URL: server.URL + "/dup", Suffix: ".TWO"},
		Segment{Name: "broken", URL: server.URL + "/broken", Suffix: ".TW"},
		Segment{Name: "columns", URL: server.URL + "/columns", Suffix: ".TW"},
		Segment{Name: "slow", URL: server.URL + "/slow", Suffix: ".TW"},
	)

	got := twse.Universe(context.Background())
	want := []string{
		"0050.TW&元大台灣50",
		"2317.TW&鴻海",
		"2330.TW&台積電",
		"2330.TWO&台積電",
		"6488.TWO&環球晶",
	}

	if len(got) != len(want) {
		t.Fatalf("Twse.Universe() = %v, want %v", got, want)
	}

	for index := range want {
		if got[index] != want[index] {
			t.Errorf("Twse.Universe()[%d] = %s, want %s", index, got[index], want[index])
		}
	}
}

func TestTwse_CompaniesAllFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	twse := NewTwse(time.Second, 2, Segment{Name: "listed", URL: server.URL, Suffix: ".TW"})
	if got := twse.Universe(context.Background()); len(got) != 0 {
		t.Errorf("Twse.Universe() = %v, want empty", got)
	}
}

func TestParseTable(t *testing.T) {
	companies, err := parseTable(strings.NewReader(listedPage), ".TW")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}

	if len(companies) != 3 {
		t.Fatalf("parseTable() = %d companies, want 3", len(companies))
	}

	if companies[1].Code != "2317.TW" || companies[1].Name != "鴻海" {
		t.Errorf("parseTable() trimmed company = %+v", companies[1])
	}

	_, err = parseTable(strings.NewReader(noColumnPage), ".TW")
	if err != ErrColumnNotFound {
		t.Errorf("parseTable() error = %v, want ErrColumnNotFound", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		arg     string
		want    []string
		wantErr bool
	}{
		{"", []string{"listed", "dr", "otc", "etf", "rotc", "tw_innovation", "otc_innovation"}, false},
		{"listed,otc", []string{"listed", "otc"}, false},
		{"etf, rotc", []string{"etf", "rotc"}, false},
		{"listed,nyse", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			segments, err := Parse(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}

			if len(segments) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", segments, tt.want)
			}

			for index, segment := range segments {
				if segment.Name != tt.want[index] {
					t.Errorf("Parse()[%d] = %s, want %s", index, segment.Name, tt.want[index])
				}
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		suffix string
	}{
		{"listed", "market=1&issuetype=1&", ".TW"},
		{"dr", "market=1&issuetype=J&", ".TW"},
		{"otc", "market=2&issuetype=4&", ".TWO"},
		{"etf", "market=1&issuetype=I&", ".TW"},
		{"rotc", "market=E&issuetype=R&", ".TWO"},
		{"tw_innovation", "market=C&issuetype=C&", ".TW"},
		{"otc_innovation", "market=A&issuetype=C&", ".TWO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segment, found := Get(tt.name)
			if !found {
				t.Fatalf("Get(%s) not found", tt.name)
			}

			if !strings.Contains(segment.URL, tt.query) || segment.Suffix != tt.suffix {
				t.Errorf("segment = %+v", segment)
			}
		})
	}
}
