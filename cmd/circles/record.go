package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/display/headless"
	"github.com/san-kum/circles/internal/export"
	"github.com/san-kum/circles/internal/frame"
	"github.com/san-kum/circles/internal/raster"
	"github.com/san-kum/circles/internal/render"
	"github.com/san-kum/circles/internal/script"
	"github.com/san-kum/circles/internal/sim"
)

var (
	scriptFile  string
	recordTicks int
	recordEvery int
	warmup      int
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [out.gif]",
		Short: "record a scripted or idle session to an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  recordRun,
	}
	cmd.Flags().StringVar(&scriptFile, "script", "", "input scenario (yaml)")
	cmd.Flags().IntVar(&recordTicks, "ticks", 180, "ticks to record")
	cmd.Flags().IntVar(&recordEvery, "every", 2, "keep one frame out of every n")
	return cmd
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}

	sc := script.Idle(cfg.Width, cfg.Height, recordTicks)
	if scriptFile != "" {
		if sc, err = script.LoadScenario(scriptFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("ticks") {
			sc.Ticks = recordTicks
		}
	}

	w, s, err := newWorld(cfg)
	if err != nil {
		return err
	}
	w.Resize(sc.Width, sc.Height)

	rec := export.NewGIFRecorder(pal, recordEvery, sc.Delta)
	disp, err := headless.New(sc, display.RGBA8, rec.Present)
	if err != nil {
		return err
	}
	drv := frame.New(w, frame.Options{
		Palette:     pal,
		StrokeWidth: cfg.StrokeWidth,
		FixedDelta:  sc.Delta,
		LogEvery:    cfg.FPSLogEvery(),
	})
	if err := display.Finish(disp.Run(context.Background(), drv)); err != nil {
		return err
	}

	if err := rec.Save(args[0]); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, %dx%d, seed %d)\n", args[0], rec.Len(), sc.Width, sc.Height, s)
	return nil
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [out.svg|out.png]",
		Short: "render one frame after a warm-up",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	cmd.Flags().IntVar(&warmup, "ticks", 120, "warm-up ticks")
	return cmd
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	out := args[0]
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("unsupported snapshot format %q (want .svg or .png)", ext)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	w, s, err := newWorld(cfg)
	if err != nil {
		return err
	}

	if warmup > 0 {
		if _, err := sim.New(w).Run(context.Background(), sim.Config{Delta: 1.0 / 60, Ticks: warmup}); err != nil {
			return err
		}
	}

	var st render.Stats
	if ext == ".svg" {
		snap := render.NewSnapshot(w.Viewport())
		st = render.Frame(snap, w, pal)
		err = export.SaveSVG(out, snap, cfg.StrokeWidth)
	} else {
		canvas := raster.New(w.Viewport())
		canvas.StrokeWidth = cfg.StrokeWidth
		st = render.Frame(canvas, w, pal)
		err = export.SavePNG(out, canvas.Image())
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d circles, seed %d)\n", out, st.Drawn, s)
	return nil
}
