package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/actions"
	"github.com/gogpu/presenter/internal/instance"
	"github.com/gogpu/presenter/internal/launch"
	"github.com/gogpu/presenter/internal/viewer"
	"github.com/gogpu/presenter/session"
)

// instanceName names the single-instance socket.
const instanceName = "presenter"

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [image | ?open=<path>]",
		Short: "Open the presenter window, or hand the image to the running one",
		Long: "Open the interactive window. When a window is already open, the image is " +
			"forwarded to it and this process exits.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, a, args)
		},
	}
}

func runOpen(cmd *cobra.Command, a *app, args []string) error {
	path, _ := launch.FindImageArg(args)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}

	lock, err := instance.Acquire(instanceName)
	if errors.Is(err, instance.ErrAlreadyRunning) {
		if err := instance.Forward(cmd.Context(), instanceName, path); err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to the running window\n", path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Focused the running window")
		}
		return nil
	}
	if err != nil {
		return err
	}
	defer lock.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := session.New(session.WithSettings(a.cfg.StyleSettings()))
	defer s.Close()

	opts := []actions.Option{
		actions.WithExportDir(a.cfg.Export.Dir),
		actions.WithPixelRatio(a.cfg.Export.PixelRatio),
	}
	if store, err := a.openStore(); err == nil {
		opts = append(opts, actions.WithStore(store))
	} else {
		presenter.Logger().Warn("presenter: templates unavailable", "err", err)
	}

	v := viewer.New(ctx, s, actions.New(s, opts...))
	go func() {
		if err := lock.Serve(ctx, func(m instance.Message) { v.Open(m.Open) }); err != nil {
			presenter.Logger().Warn("presenter: instance listener stopped", "err", err)
		}
	}()
	if path != "" {
		v.Open(path)
	}

	if err := v.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
