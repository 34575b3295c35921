package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/config"
	"github.com/gogpu/presenter/template"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:           "presenter",
		Short:         "Screenshot Presenter frames screenshots on gradient backgrounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file (default <user config dir>/presenter/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newTemplateCmd(a))
	cmd.AddCommand(newOpenCmd(a))
	cmd.AddCommand(newIconCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	path := flags.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		h = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	presenter.SetLogger(slog.New(h))
	presenter.Logger().Debug("presenter: config loaded", "path", path)
	return nil
}

// openStore opens the configured template store.
func (a *app) openStore() (*template.Store, error) {
	path := a.cfg.Templates.Path
	if path == "" {
		p, err := template.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return template.Open(path)
}

// exportFormat resolves the output format from the flag, then the output
// file's extension, then the configuration.
func (a *app) exportFormat(flag, output string) (presenter.Format, error) {
	if flag != "" {
		return presenter.ParseFormat(flag)
	}
	if f, err := presenter.ParseFormat(extension(output)); err == nil {
		return f, nil
	}
	f, err := a.cfg.ExportFormat()
	if err != nil {
		return f, fmt.Errorf("config export format: %w", err)
	}
	return f, nil
}
