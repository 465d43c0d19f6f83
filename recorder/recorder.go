package recorder

import (
	"context"
	"errors"
	"time"

	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/quotes"
	"github.com/nzai/dayk/sources"
	"github.com/nzai/dayk/stores"
	"go.uber.org/zap"
)

// Recorder 记录器
type Recorder struct {
	source       sources.Source // 数据源
	store        stores.Store   // 存储
	minCacheSize int64
	maxAge       time.Duration
	now          func() time.Time
}

// NewRecorder 新建记录器, maxAge 0 means cached files never expire
func NewRecorder(source sources.Source, store stores.Store, minCacheSize int64, maxAge time.Duration) *Recorder {
	return &Recorder{
		source:       source,
		store:        store,
		minCacheSize: minCacheSize,
		maxAge:       maxAge,
		now:          time.Now,
	}
}

// Record 记录一只证券的日K, record format is "ticker&name"
func (r Recorder) Record(ctx context.Context, record string) Outcome {
	company, err := quotes.ParseRecord(record)
	if err != nil {
		zap.L().Debug("parse universe record failed", zap.Error(err), zap.String("record", record))
		return failed(record, err)
	}

	key := company.FileName()

	fresh, err := r.cached(ctx, key)
	if err != nil {
		return failed(company.Code, err)
	}

	if fresh {
		return exists(company.Code)
	}

	series, err := r.source.History(ctx, company.Code)
	if err != nil {
		zap.L().Debug("query history failed", zap.Error(err), zap.String("ticker", company.Code))
		return failed(company.Code, err)
	}

	if len(series) == 0 {
		return empty(company.Code)
	}

	err = r.store.Save(ctx, key, series)
	if err != nil {
		return failed(company.Code, err)
	}

	zap.L().Debug("save history success",
		zap.String("ticker", company.Code),
		zap.String("key", key),
		zap.Int("rows", len(series)))

	return success(company.Code)
}

// cached check key holds a usable series
func (r Recorder) cached(ctx context.Context, key string) (bool, error) {
	object, err := r.store.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, constants.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	if object.Size <= r.minCacheSize {
		return false, nil
	}

	if r.maxAge > 0 && r.now().Sub(object.ModTime) > r.maxAge {
		zap.L().Debug("cached series expired", zap.String("key", key), zap.Time("modified", object.ModTime))
		return false, nil
	}

	return true, nil
}
