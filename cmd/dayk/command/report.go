package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/reports"
	"github.com/nzai/dayk/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&SendReport{})
}

type SendReport struct {
	config string
	market string
	table  string
	date   string
}

func (r *SendReport) Command() *cli.Command {
	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "send market report email",
		Flags: []cli.Flag{
			configFlag(&r.config),
			&cli.StringFlag{
				Name:        "market",
				Aliases:     []string{"m"},
				Usage:       "market `label`, eg: 台灣, US, 香港",
				Required:    true,
				Destination: &r.market,
			},
			&cli.StringSliceFlag{
				Name:  "chart",
				Usage: "chart image `id:label:path`, repeat in display order",
			},
			&cli.StringSliceFlag{
				Name:  "period",
				Usage: "period report `Week:path`, repeat in display order",
			},
			&cli.StringFlag{
				Name:        "table",
				Aliases:     []string{"t"},
				Usage:       "results table `file`, .csv or .xlsx",
				Destination: &r.table,
			},
			&cli.StringFlag{
				Name:        "date",
				Usage:       "report date `2024-01-02`, today when empty",
				Destination: &r.date,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, done, err := Setup(r.config)
			if err != nil {
				return err
			}
			defer done()

			input, err := r.input(c.StringSlice("chart"), c.StringSlice("period"))
			if err != nil {
				return err
			}

			// failures are logged by the reporter
			reports.NewReporter(cfg).Send(ctx, input)
			return nil
		},
	}
}

func (r SendReport) input(charts, periods []string) (*reports.Input, error) {
	input := &reports.Input{Market: r.market}

	input.Date = utils.TodayZero(time.Now())
	if r.date != "" {
		date, err := time.ParseInLocation(constants.DatePattern, r.date, utils.TaipeiLocation())
		if err != nil {
			zap.L().Error("parse report date failed", zap.Error(err), zap.String("date", r.date))
			return nil, err
		}
		input.Date = date
	}

	var err error
	input.Charts, err = parseCharts(charts)
	if err != nil {
		return nil, err
	}

	input.Periods, err = parsePeriods(periods)
	if err != nil {
		return nil, err
	}

	if r.table != "" {
		input.Table, err = reports.LoadTable(r.table)
		if err != nil {
			return nil, err
		}
	}

	return input, nil
}

// parseCharts parse id:label:path arguments
func parseCharts(args []string) ([]reports.Chart, error) {
	charts := make([]reports.Chart, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("chart arg invalid: %s", arg)
		}

		charts = append(charts, reports.Chart{ID: parts[0], Label: parts[1], Path: parts[2]})
	}

	return charts, nil
}

// parsePeriods parse period:path arguments and read report text
func parsePeriods(args []string) ([]reports.PeriodReport, error) {
	periods := make([]reports.PeriodReport, 0, len(args))
	for _, arg := range args {
		period, path, found := strings.Cut(arg, ":")
		if !found || period == "" || path == "" {
			return nil, fmt.Errorf("period arg invalid: %s", arg)
		}

		buffer, err := os.ReadFile(path)
		if err != nil {
			zap.L().Error("read period report failed", zap.Error(err), zap.String("path", path))
			return nil, err
		}

		periods = append(periods, reports.PeriodReport{Period: period, Text: string(buffer)})
	}

	return periods, nil
}
