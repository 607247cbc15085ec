package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/logdeck/internal/app"
	"github.com/five82/logdeck/internal/config"
	"github.com/five82/logdeck/internal/ingest"
	"github.com/five82/logdeck/internal/logging"
)

// cli carries the resolved settings shared by every subcommand.
type cli struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "logdeck",
		Short:         "Terminal client for the log ingestion backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), app.Options{
				Config:    cfg,
				PrefsPath: c.v.GetString("prefs"),
				Debug:     c.v.GetBool("debug"),
			})
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("prefs", "", "preferences file (default ~/.config/logdeck/prefs.toml)")
	flags.String("api", "", "backend address, overrides api_url")
	flags.Bool("debug", false, "debug logging (mirrored to stderr for subcommands)")

	c.bind(root)

	root.AddCommand(
		c.uploadCmd(),
		c.ingestsCmd(),
		c.logsCmd(),
		c.probeCmd(),
		c.exportCmd(),
	)
	return root
}

func (c *cli) bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	_ = c.v.BindPFlag("config", flags.Lookup("config"))
	_ = c.v.BindPFlag("prefs", flags.Lookup("prefs"))
	_ = c.v.BindPFlag("api_url", flags.Lookup("api"))
	_ = c.v.BindPFlag("debug", flags.Lookup("debug"))

	c.v.SetEnvPrefix("LOGDECK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	for _, key := range []string{"config", "api_url", "log_file", "log_limit", "request_timeout"} {
		_ = c.v.BindEnv(key)
	}
}

// config loads the TOML file and layers environment and flag overrides on top.
func (c *cli) config() (config.Config, error) {
	path := c.v.GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if c.v.IsSet("api_url") {
		cfg.APIURL = c.v.GetString("api_url")
	}
	if c.v.IsSet("log_file") {
		logFile, err := config.ExpandPath(c.v.GetString("log_file"))
		if err != nil {
			return config.Config{}, fmt.Errorf("log_file: %w", err)
		}
		cfg.LogFile = logFile
	}
	if c.v.IsSet("log_limit") {
		cfg.LogLimit = c.v.GetInt("log_limit")
	}
	if c.v.IsSet("request_timeout") {
		cfg.RequestTimeout = c.v.GetDuration("request_timeout")
	}
	return cfg, cfg.Validate()
}

// connect resolves the config and builds a logger and client for a subcommand.
func (c *cli) connect() (*ingest.Client, config.Config, *slog.Logger, func(), error) {
	cfg, err := c.config()
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}

	opts := logging.Options{File: cfg.LogFile, Debug: c.v.GetBool("debug")}
	if opts.Debug {
		opts.Stderr = c.stderr
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	done := func() { _ = closeLog() }

	client, err := app.Dial(cfg, logger)
	if err != nil {
		done()
		return nil, config.Config{}, nil, nil, err
	}
	return client, cfg, logger, done, nil
}
