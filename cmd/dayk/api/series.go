package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/quotes"
	"go.uber.org/zap"
)

// SeriesKeys cached series keys
type SeriesKeys struct {
	Keys []string `json:"keys"`
}

// TickerSeries cached series of ticker
type TickerSeries struct {
	Ticker string        `json:"ticker"`
	Key    string        `json:"key"`
	Quotes quotes.Series `json:"quotes"`
}

func (s Server) listSeries(c *gin.Context) {
	keys, err := s.store.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		render(c, http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}

	render(c, http.StatusOK, Response{Data: SeriesKeys{Keys: keys}})
}

func (s Server) getSeries(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		render(c, http.StatusBadRequest, Response{Error: "ticker undefined"})
		return
	}

	ctx := c.Request.Context()

	// cache keys are {ticker}_{name}.csv, the first match wins
	keys, err := s.store.List(ctx, ticker+"_")
	if err != nil {
		render(c, http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}

	if len(keys) == 0 {
		render(c, http.StatusNotFound, Response{Error: constants.ErrRecordNotFound.Error()})
		return
	}

	series := new(quotes.Series)
	err = s.store.Load(ctx, keys[0], series)
	if err != nil {
		if errors.Is(err, constants.ErrRecordNotFound) {
			render(c, http.StatusNotFound, Response{Error: err.Error()})
			return
		}

		zap.L().Error("load series failed", zap.Error(err), zap.String("key", keys[0]))
		render(c, http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}

	render(c, http.StatusOK, Response{Data: TickerSeries{Ticker: ticker, Key: keys[0], Quotes: *series}})
}
