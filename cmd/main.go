package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/configs"
	"github.com/YongERong/wth-caifan-lovers/pkg/logger"
)

var (
	cfg *configs.Config
	log *zap.Logger
)

func main() {
	app := &cli.App{
		Name:  "silvergen",
		Usage: "SilverGen Pals backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory containing config.yaml",
				EnvVars: []string{"SILVERGEN_CONFIG_DIR"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "overrides log.level",
			},
		},
		Before: func(c *cli.Context) error {
			var paths []string
			if dir := c.String("config-dir"); dir != "" {
				paths = append(paths, dir)
			}
			var err error
			cfg, err = configs.Load(paths...)
			if err != nil {
				return err
			}
			if level := c.String("log-level"); level != "" {
				cfg.Log.Level = level
			}
			log, err = logger.New(cfg.Log.Level)
			return err
		},
		After: func(c *cli.Context) error {
			if log != nil {
				_ = log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			serveCommand,
			swipeCommand,
			transcribeCommand,
			extractCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
