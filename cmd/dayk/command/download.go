package command

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nzai/dayk/config"
	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/exchanges"
	"github.com/nzai/dayk/notifiers"
	"github.com/nzai/dayk/recorder"
	"github.com/nzai/dayk/schedulers"
	"github.com/nzai/dayk/sources"
	"github.com/nzai/dayk/stores"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&DownloadDayK{})
}

type DownloadDayK struct {
	config   string
	store    string
	segments string
}

func (d *DownloadDayK) Command() *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"d"},
		Usage:   "download day-K history of every taiwan listed security",
		Flags: []cli.Flag{
			configFlag(&d.config),
			&cli.StringFlag{
				Name:        "store",
				Aliases:     []string{"s"},
				Usage:       "override store, eg: `fs:./data/tw-share/dayK`",
				Destination: &d.store,
			},
			&cli.StringFlag{
				Name:        "segments",
				Aliases:     []string{"e"},
				Usage:       "override registry segments, eg: `listed,otc`",
				Destination: &d.segments,
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "override download workers",
				Value:   0,
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "hide progress bar",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, done, err := Setup(d.config)
			if err != nil {
				return err
			}
			defer done()

			if d.store != "" {
				cfg.Store = d.store
			}

			if d.segments != "" {
				cfg.Segments = d.segments
			}

			if parallel := int(c.Int("parallel")); parallel > 0 {
				cfg.Download.Parallel = parallel
			}

			if c.Bool("no-progress") {
				cfg.Download.Progress = false
			}

			_, err = Download(ctx, cfg)
			return err
		},
	}
}

// Download list universe, download every record and print run report
func Download(ctx context.Context, cfg *config.Config) (*schedulers.RunStats, error) {
	segments, err := exchanges.Parse(cfg.Segments)
	if err != nil {
		zap.L().Error("parse segments failed", zap.Error(err), zap.String("segments", cfg.Segments))
		return nil, err
	}

	store, err := stores.Parse(cfg.Store, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var notifier notifiers.Notifier
	if cfg.Nsq.Broker != "" {
		notifier, err = notifiers.NewNsq(cfg.Nsq.Broker, cfg.Nsq.Topic)
		if err != nil {
			return nil, err
		}
		defer notifier.Close()
	}

	id := uuid.NewString()
	start := time.Now()

	zap.L().Info("📡 listing registry segments", zap.String("id", id), zap.Int("segments", len(segments)))
	universe := exchanges.NewTwse(cfg.Download.ListTimeout, constants.DefaultListParallel, segments...).Universe(ctx)
	zap.L().Info("🚀 download start", zap.String("id", id), zap.Int("universe", len(universe)))

	source := sources.NewYahooFinance(sources.YahooEndpoint, cfg.Download.Lookback, cfg.Download.FetchTimeout, cfg.Download.RateLimit)
	r := recorder.NewRecorder(source, store, cfg.Download.MinCacheSize, cfg.Download.MaxAge)
	scheduler := schedulers.NewScheduler(r, cfg.Download.Parallel, cfg.Download.ErrorSampleLength, cfg.Download.Progress)

	stats := scheduler.Run(ctx, universe)
	stats.Print(os.Stdout)

	end := time.Now()
	zap.L().Info("download end",
		zap.String("id", id),
		zap.Int("total", stats.Total()),
		zap.Duration("duration", end.Sub(start)))

	if notifier != nil {
		notifier.Notify(stats.Summary(id, start, end))
	}

	return stats, nil
}
