package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"arbor/app"
	"arbor/hal"
	"arbor/lsys/config"
	"arbor/lsys/introspect"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Grow in a desktop window (default)",
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	for _, c := range []*cobra.Command{rootCmd, windowCmd} {
		c.Flags().Int("scale", 2, "Window pixels per framebuffer pixel")
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	scale, _ := cmd.Flags().GetInt("scale")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	return hal.RunWindow(ctx, func(h hal.HAL) (hal.Step, error) {
		sys, err := app.Build(cfg, h.Clock().Now, log, reg)
		if err != nil {
			return nil, err
		}
		serveIntrospection(ctx, cfg, sys, reg, log)
		return sys.Step(h, app.StepOptions{}), nil
	}, hal.WindowConfig{
		Title:  "arbor",
		Width:  cfg.View.Width,
		Height: cfg.View.Height,
		Scale:  scale,
		TPS:    cfg.View.TPS,
	})
}

// serveIntrospection starts the HTTP server in the background when cfg.Listen is set.
func serveIntrospection(ctx context.Context, cfg config.Config, sys *app.System, reg *prometheus.Registry, log *slog.Logger) {
	if cfg.Listen == "" {
		return
	}
	h := introspect.NewHandler(sys.Publisher, reg, log)
	go func() {
		if err := introspect.Serve(ctx, cfg.Listen, h, log); err != nil {
			log.Error("introspection server failed", "error", err)
		}
	}()
}
