package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"arbor/app"
	"arbor/hal"
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Grow without a window, on a virtual clock",
	Long: `Runs playback without opening a window. Ticks run back to back unless --realtime
is set; segment settling follows a virtual clock that advances 1/hz per tick, so a
run is reproducible regardless of machine speed.`,
	RunE: runHeadless,
}

func init() {
	rootCmd.AddCommand(headlessCmd)
	f := headlessCmd.Flags()
	f.Uint64("ticks", 0, "Stop after N ticks (0 = run until interrupted)")
	f.Int("hz", 60, "Ticks per virtual second")
	f.Bool("realtime", false, "Pace ticks at --hz instead of running flat out")
	f.Int("render-every", 0, "Draw a frame every N ticks (0 = only for --png)")
	f.String("png", "", "Write the final frame to this PNG file")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	f := cmd.Flags()
	ticks, _ := f.GetUint64("ticks")
	hz, _ := f.GetInt("hz")
	realtime, _ := f.GetBool("realtime")
	renderEvery, _ := f.GetInt("render-every")
	pngPath, _ := f.GetString("png")
	if renderEvery <= 0 {
		// Frames are only needed for the snapshot.
		renderEvery = int(^uint(0) >> 1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	var sys *app.System
	fb, err := hal.RunHeadless(ctx, func(h hal.HAL) (hal.Step, error) {
		var err error
		sys, err = app.Build(cfg, h.Clock().Now, log, reg)
		if err != nil {
			return nil, err
		}
		serveIntrospection(ctx, cfg, sys, reg, log)
		return sys.Step(h, app.StepOptions{RenderEvery: renderEvery}), nil
	}, hal.HeadlessConfig{
		Width:    cfg.View.Width,
		Height:   cfg.View.Height,
		Hz:       hz,
		Ticks:    ticks,
		Realtime: realtime,
	})
	if err = ignoreQuit(err, context.Canceled); err != nil {
		return err
	}
	if sys == nil {
		return nil
	}

	d := sys.Driver
	log.Info("headless run finished",
		"progress", d.Progress(),
		"generation", d.Cache().Generation(),
		"length", d.Cache().Len(),
		"segments", d.Recorder().Len(),
		"underflows", d.Turtle().Underflows(),
		"frozen", d.Frozen(),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "progress=%d generation=%d length=%d segments=%d\n",
		d.Progress(), d.Cache().Generation(), d.Cache().Len(), d.Recorder().Len())

	if pngPath == "" {
		return nil
	}
	if err := sys.Render(); err != nil {
		return err
	}
	out, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := hal.WritePNG(out, fb); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
