package config

import (
	"errors"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nzai/dayk/constants"
)

// Config global config
type Config struct {
	// Store cache store, eg: fs:./data/tw-share/dayK, s3:bucket, cos:https://bucket.cos.ap-taipei.myqcloud.com
	Store string `toml:"store"`
	// Segments registry segments to list, empty means all
	Segments string `toml:"segments"`

	Download struct {
		Parallel          int           `toml:"parallel"`
		Lookback          string        `toml:"lookback"`
		ListTimeout       time.Duration `toml:"list_timeout"`
		FetchTimeout      time.Duration `toml:"fetch_timeout"`
		MinCacheSize      int64         `toml:"min_cache_size"`
		MaxAge            time.Duration `toml:"max_age"`
		RateLimit         float64       `toml:"rate_limit"`
		ErrorSampleLength int           `toml:"error_sample_length"`
		Progress          bool          `toml:"progress"`
	} `toml:"download"`

	Report struct {
		From       string   `toml:"from"`
		To         []string `toml:"to"`
		RankColumn string   `toml:"rank_column"`
		TopN       int      `toml:"top_n"`
		Endpoint   string   `toml:"endpoint"`
	} `toml:"report"`

	Log struct {
		Level      string `toml:"level"`
		File       string `toml:"file"`
		MaxSize    int    `toml:"max_size"`
		MaxBackups int    `toml:"max_backups"`
		MaxAge     int    `toml:"max_age"`
	} `toml:"log"`

	Nsq struct {
		Broker string `toml:"broker"`
		Topic  string `toml:"topic"`
	} `toml:"nsq"`

	S3 struct {
		AccessKeyID     string `toml:"id"`
		SecretAccessKey string `toml:"secret"`
		Region          string `toml:"region"`
		Bucket          string `toml:"bucket"`
	} `toml:"s3"`

	Cos struct {
		SecretID  string `toml:"secret_id"`
		SecretKey string `toml:"secret_key"`
	} `toml:"cos"`

	Serve struct {
		Address string `toml:"address"`
	} `toml:"serve"`
}

// Default return config with every tunable set to its fixed default
func Default() *Config {
	c := new(Config)
	c.Store = "fs:./data/tw-share/dayK"

	c.Download.Parallel = constants.DefaultParallel
	c.Download.Lookback = constants.DefaultLookback
	c.Download.ListTimeout = constants.DefaultListTimeout
	c.Download.FetchTimeout = constants.DefaultFetchTimeout
	c.Download.MinCacheSize = constants.DefaultMinCacheSize
	c.Download.ErrorSampleLength = constants.DefaultErrorSampleLength
	c.Download.Progress = true

	c.Report.From = "StockMonitor <onboarding@resend.dev>"
	c.Report.To = []string{"kadelat@gmail.com"}
	c.Report.RankColumn = constants.DefaultRankColumn
	c.Report.TopN = constants.DefaultTopN
	c.Report.Endpoint = "https://api.resend.com"

	c.Log.Level = "info"
	c.Log.MaxSize = 100
	c.Log.MaxBackups = 7
	c.Log.MaxAge = 30

	c.Serve.Address = ":21000"

	return c
}

// Valid validate config
func (c Config) Valid() error {
	if strings.TrimSpace(c.Store) == "" {
		return errors.New("store undefined")
	}

	if c.Download.Parallel <= 0 {
		return errors.New("download.parallel must be positive")
	}

	if strings.TrimSpace(c.Download.Lookback) == "" {
		return errors.New("download.lookback undefined")
	}

	if c.Download.ListTimeout <= 0 || c.Download.FetchTimeout <= 0 {
		return errors.New("download timeouts must be positive")
	}

	if c.Download.MinCacheSize < 0 {
		return errors.New("download.min_cache_size must not be negative")
	}

	if c.Download.MaxAge < 0 {
		return errors.New("download.max_age must not be negative")
	}

	if c.Download.RateLimit < 0 {
		return errors.New("download.rate_limit must not be negative")
	}

	if c.Download.ErrorSampleLength <= 0 {
		return errors.New("download.error_sample_length must be positive")
	}

	if strings.TrimSpace(c.Report.From) == "" {
		return errors.New("report.from undefined")
	}

	if len(c.Report.To) == 0 {
		return errors.New("report.to undefined")
	}

	if c.Report.TopN <= 0 {
		return errors.New("report.top_n must be positive")
	}

	if (c.Nsq.Broker == "") != (c.Nsq.Topic == "") {
		return errors.New("nsq.broker and nsq.topic must be set together")
	}

	return nil
}

// Parse parse config from file, unset keys keep their defaults.
// An empty path returns the defaults.
func Parse(filePath string) (*Config, error) {
	c := Default()
	if filePath == "" {
		return c, c.Valid()
	}

	_, err := toml.DecodeFile(filePath, c)
	if err != nil {
		return nil, err
	}

	return c, c.Valid()
}
