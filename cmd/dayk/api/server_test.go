package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nzai/dayk/quotes"
	"github.com/nzai/dayk/stores"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := stores.NewFileSystem(t.TempDir())
	location := time.FixedZone("CST", 8*60*60)
	series := quotes.Series{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, location), Open: 590, High: 593, Low: 589, Close: 593, Volume: 26059058},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, location), Open: 584, High: 585, Low: 576, Close: 578, Volume: 37106763},
	}

	for _, key := range []string{"2330.TW_台積電.csv", "2317.TW_鴻海.csv"} {
		err := store.Save(context.Background(), key, series)
		if err != nil {
			t.Fatalf("save series failed: %v", err)
		}
	}

	return NewServer(store, ":0")
}

func TestServer_Ping(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if recorder.Code != http.StatusOK || recorder.Body.String() != "pong" {
		t.Errorf("ping = %d %s", recorder.Code, recorder.Body.String())
	}
}

func TestServer_Series(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		url    string
		status int
		rows   int
	}{
		{"found", "/api/series/2330.TW", http.StatusOK, 2},
		{"not found", "/api/series/0000.TW", http.StatusNotFound, 0},
		{"no route", "/api/unknown", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if recorder.Code != tt.status {
				t.Fatalf("GET %s = %d, want %d", tt.url, recorder.Code, tt.status)
			}

			if tt.rows == 0 {
				return
			}

			var response struct {
				Data struct {
					Ticker string         `json:"ticker"`
					Key    string         `json:"key"`
					Quotes []quotes.Quote `json:"quotes"`
				} `json:"data"`
			}

			err := json.Unmarshal(recorder.Body.Bytes(), &response)
			if err != nil {
				t.Fatalf("unmarshal response failed: %v", err)
			}

			if response.Data.Key != "2330.TW_台積電.csv" || len(response.Data.Quotes) != tt.rows {
				t.Errorf("GET %s = %+v", tt.url, response.Data)
			}
		})
	}
}

func TestServer_ListSeries(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/series?prefix=23", nil))

	var response struct {
		Data SeriesKeys `json:"data"`
	}

	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	if err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}

	if len(response.Data.Keys) != 2 || response.Data.Keys[0] != "2317.TW_鴻海.csv" {
		t.Errorf("GET /api/series = %v", response.Data.Keys)
	}
}
