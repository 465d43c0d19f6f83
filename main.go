package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/nzai/dayk/cmd/dayk/command"
	"go.uber.org/zap"
)

var configArgument = flag.String("c", "", "toml config file, defaults are used when empty")

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	flag.Parse()

	cfg, done, err := command.Setup(*configArgument)
	if err != nil {
		zap.L().Fatal("setup failed", zap.Error(err), zap.String("config", *configArgument))
	}
	defer done()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = command.Download(ctx, cfg)
	if err != nil {
		zap.L().Fatal("download failed", zap.Error(err))
	}
}
