package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nzai/dayk/config"
	"github.com/nzai/dayk/quotes"
	"go.uber.org/zap"
)

// Object define stored series object
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Store define per ticker series store
type Store interface {
	// Stat return stored object, constants.ErrRecordNotFound when absent
	Stat(context.Context, string) (*Object, error)
	// Save save series, replace the existing object
	Save(context.Context, string, quotes.Encoder) error
	// Load load series
	Load(context.Context, string, quotes.Decoder) error
	// List list object keys with prefix, sorted
	List(context.Context, string) ([]string, error)
	// Close close store
	Close() error
}

// Parse parse command argument, eg: fs:./data/tw-share/dayK, s3:tw-share/dayK, cos:https://bucket-1250000000.cos.ap-taipei.myqcloud.com/dayK
func Parse(arg string, c *config.Config) (Store, error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		zap.L().Error("store arg invalid", zap.String("arg", arg))
		return nil, fmt.Errorf("store arg invalid: %s", arg)
	}

	switch parts[0] {
	case "fs":
		return NewFileSystem(parts[1]), nil
	case "s3":
		store, err := NewS3(&S3Config{
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			Prefix:          parts[1],
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "cos":
		store, err := NewCos(parts[1], c.Cos.SecretID, c.Cos.SecretKey)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		zap.L().Error("store type invalid", zap.String("type", parts[0]))
		return nil, fmt.Errorf("store type invalid: %s", parts[0])
	}
}
