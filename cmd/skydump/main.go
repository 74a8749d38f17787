package main

import (
	"os"

	"github.com/32bitkid/sky"
	"github.com/32bitkid/sky/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	configFlag      = "config"
	logLevelFlag    = "log-level"
	outputFlag      = "output"
	parallelismFlag = "parallelism"
)

func main() {
	app := cli.NewApp()
	app.Name = "skydump"
	app.Usage = "extract and decode the Beneath a Steel Sky data files"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  configFlag + ", c",
			Usage: "path to a TOML configuration file",
		},
		cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "set the logging level [trace, debug, info, warn, error, fatal, panic]",
		},
	}
	app.Commands = []cli.Command{
		listCommand,
		dumpCommand,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("skydump")
	}
}

// setup loads the configuration, applies the global flags and opens the
// archive named by the first argument.
func setup(c *cli.Context) (*config.Config, *sky.Root, error) {
	cfg, err := config.Load(c.GlobalString(configFlag))
	if err != nil {
		return nil, nil, err
	}
	if lvl := c.GlobalString(logLevelFlag); lvl != "" {
		cfg.LogLevel = lvl
	}
	if out := c.String(outputFlag); out != "" {
		cfg.OutputDir = out
	}
	if n := c.Int(parallelismFlag); n > 0 {
		cfg.Parallelism = n
	}

	lvl, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	logrus.SetLevel(lvl)

	path := c.Args().First()
	if path == "" {
		return nil, nil, cli.NewExitError("missing path to the game data files", 1)
	}

	root, err := sky.Open(path,
		sky.WithLogger(logrus.StandardLogger()),
		sky.WithParallelism(cfg.Parallelism),
	)
	if err != nil {
		return nil, nil, err
	}
	return cfg, root, nil
}
