package command

import (
	"context"

	"github.com/nzai/dayk/cmd/dayk/api"
	"github.com/nzai/dayk/stores"
	"github.com/urfave/cli/v3"
)

func init() {
	RegisterCommand(&Serve{})
}

type Serve struct {
	config  string
	address string
}

func (s *Serve) Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve cached series over http",
		Flags: []cli.Flag{
			configFlag(&s.config),
			&cli.StringFlag{
				Name:        "address",
				Aliases:     []string{"a"},
				Usage:       "override listen `address`, eg: :21000",
				Destination: &s.address,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, done, err := Setup(s.config)
			if err != nil {
				return err
			}
			defer done()

			if s.address != "" {
				cfg.Serve.Address = s.address
			}

			store, err := stores.Parse(cfg.Store, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return api.NewServer(store, cfg.Serve.Address).Run()
		},
	}
}
