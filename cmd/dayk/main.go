package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nzai/dayk/cmd/dayk/command"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	app := &cli.Command{
		Name:  "dayk",
		Usage: "taiwan day-K downloader and market report mailer",
	}

	for _, command := range command.Commands {
		app.Commands = append(app.Commands, command.Command())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		zap.L().Fatal(err.Error())
	}
}
