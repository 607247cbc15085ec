package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/logdeck/internal/config"
	"github.com/five82/logdeck/internal/ingest"
	"github.com/five82/logdeck/internal/logging"
	"github.com/five82/logdeck/internal/prefs"
	"github.com/five82/logdeck/internal/state"
	"github.com/five82/logdeck/internal/ui"
)

// Options configure the logdeck TUI.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/logdeck/prefs.toml
	Debug     bool
	ExportDir string
}

// Dial builds the ingestion client for cfg.
func Dial(cfg config.Config, logger *slog.Logger) (*ingest.Client, error) {
	clientOpts := []ingest.Option{ingest.WithLogger(logger)}
	if cfg.RequestTimeout > 0 {
		clientOpts = append(clientOpts, ingest.WithTimeout(cfg.RequestTimeout))
	}
	client, err := ingest.NewClient(cfg.APIURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init ingest client: %w", err)
	}
	return client, nil
}

// Run boots the logdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := opts.Config.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal, so records only go to the log file.
	logger, closeLog, err := logging.New(logging.Options{File: opts.Config.LogFile, Debug: opts.Debug})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	client, err := Dial(opts.Config, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "api_url", client.BaseURL())

	return ui.Run(uiOptions(ctx, opts, client, logger))
}

func uiOptions(ctx context.Context, opts Options, client *ingest.Client, logger *slog.Logger) ui.Options {
	userPrefs, _ := prefs.Load(opts.PrefsPath)
	session := state.NewSession()

	return ui.Options{
		Context:   ctx,
		Gateway:   client,
		Monitor:   state.NewMonitor(client, session, logger),
		Session:   session,
		Logger:    logger,
		APIURL:    client.BaseURL(),
		LogLimit:  opts.Config.LogLimit,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		UploadDir: userPrefs.LastUploadDir,
		ExportDir: opts.ExportDir,
	}
}
