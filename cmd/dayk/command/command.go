package command

import (
	"github.com/nzai/dayk/config"
	"github.com/nzai/dayk/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type Commander interface {
	Command() *cli.Command
}

var Commands = []Commander{}

func RegisterCommand(cmd Commander) {
	Commands = append(Commands, cmd)
}

func configFlag(destination *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "specify toml config `file`, defaults are used when empty",
		Value:       "",
		Destination: destination,
	}
}

// Setup parse config and replace global logger, call the returned func on exit
func Setup(configPath string) (*config.Config, func(), error) {
	c, err := config.Parse(configPath)
	if err != nil {
		zap.L().Error("parse config failed", zap.Error(err), zap.String("path", configPath))
		return nil, nil, err
	}

	logger, err := utils.NewLogger(utils.LoggerOptions{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	})
	if err != nil {
		zap.L().Error("create logger failed", zap.Error(err), zap.String("level", c.Log.Level))
		return nil, nil, err
	}

	undo := zap.ReplaceGlobals(logger)

	return c, func() {
		logger.Sync()
		undo()
	}, nil
}
