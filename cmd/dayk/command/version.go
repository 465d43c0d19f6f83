package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version define binary version
const Version = "v1.0.0"

func init() {
	RegisterCommand(&ShowVersion{})
}

type ShowVersion struct{}

func (c ShowVersion) Command() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "show version",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Println(Version)
			return nil
		},
	}
}
