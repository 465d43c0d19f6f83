package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/exchanges"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&ListUniverse{})
}

type ListUniverse struct {
	config   string
	segments string
	output   string
}

func (l *ListUniverse) Command() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "list universe records ticker&name",
		Flags: []cli.Flag{
			configFlag(&l.config),
			&cli.StringFlag{
				Name:        "segments",
				Aliases:     []string{"e"},
				Usage:       "override registry segments, eg: `listed,otc`",
				Destination: &l.segments,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write records to `file` instead of stdout",
				Destination: &l.output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, done, err := Setup(l.config)
			if err != nil {
				return err
			}
			defer done()

			if l.segments != "" {
				cfg.Segments = l.segments
			}

			segments, err := exchanges.Parse(cfg.Segments)
			if err != nil {
				zap.L().Error("parse segments failed", zap.Error(err), zap.String("segments", cfg.Segments))
				return err
			}

			universe := exchanges.NewTwse(cfg.Download.ListTimeout, constants.DefaultListParallel, segments...).Universe(ctx)

			var w io.Writer = os.Stdout
			if l.output != "" {
				file, err := os.Create(l.output)
				if err != nil {
					zap.L().Error("create output file failed", zap.Error(err), zap.String("path", l.output))
					return err
				}
				defer file.Close()
				w = file
			}

			_, err = fmt.Fprintln(w, strings.Join(universe, "\n"))
			if err != nil {
				return err
			}

			zap.L().Info("list universe success", zap.Int("records", len(universe)))
			return nil
		},
	}
}
