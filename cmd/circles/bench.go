package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/metrics"
	"github.com/san-kum/circles/internal/raster"
	"github.com/san-kum/circles/internal/render"
	"github.com/san-kum/circles/internal/sim"
	"github.com/san-kum/circles/internal/storage"
)

var (
	benchTicks int
	benchSave  bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b3d9e6"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time ticks and renders off-screen",
		Args:  cobra.NoArgs,
		RunE:  benchRun,
	}
	cmd.Flags().IntVar(&benchTicks, "ticks", 600, "ticks to run")
	cmd.Flags().BoolVar(&benchSave, "save", false, "save the run under the data directory")
	return cmd
}

func benchRun(cmd *cobra.Command, args []string) error {
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

	canvas := raster.New(w.Viewport())
	canvas.StrokeWidth = cfg.StrokeWidth
	out := display.NewFrame(cfg.Width, cfg.Height, display.RGBA8)

	tickMean := metrics.NewFrameTime(metrics.Mean)
	tickMax := metrics.NewFrameTime(metrics.Max)
	renders := metrics.NewFrameTime(metrics.P95)
	var drawn, skipped int

	runner := sim.New(w)
	runner.AddMetric(tickMean)
	runner.AddMetric(tickMax)
	runner.AddMetric(metrics.NewAlive(w))
	runner.AddMetric(metrics.NewPan())
	runner.AddObserver(sim.ObserverFunc(func(sim.Sample) error {
		start := time.Now()
		st := render.Frame(canvas, w, pal)
		if err := canvas.Present(out); err != nil {
			return err
		}
		renders.Add(time.Since(start))
		drawn += st.Drawn
		skipped += st.Skipped
		return nil
	}))

	result, err := runner.Run(context.Background(), sim.Config{
		Delta:    1.0 / 60,
		Ticks:    benchTicks,
		Validate: true,
	})
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"viewport", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)},
		{"pools", fmt.Sprintf("%d particles, %d dust", cfg.ParticleCount, cfg.DustCount)},
		{"seed", fmt.Sprintf("%d", s)},
		{"ticks", fmt.Sprintf("%d in %v", result.Ticks, result.Elapsed.Round(time.Millisecond))},
		{"render p95", fmt.Sprintf("%.3f ms", renders.Value())},
		{"circles/frame", fmt.Sprintf("%d drawn, %d skipped", drawn/result.Ticks, skipped/result.Ticks)},
	}
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, [2]string{name, fmt.Sprintf("%.4f", result.Metrics[name])})
	}

	var body string
	for i, r := range rows {
		if i > 0 {
			body += "\n"
		}
		body += labelStyle.Render(r[0]) + valueStyle.Render(r[1])
	}
	fmt.Println(titleStyle.Render("circles bench"))
	fmt.Println(boxStyle.Render(body))
	fmt.Println()

	if len(renders.Samples()) > 1 {
		fmt.Println(plotFrames(renders.Samples(), "render ms per frame"))
	}

	if benchSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Seed:      s,
			Width:     cfg.Width,
			Height:    cfg.Height,
			Particles: cfg.ParticleCount,
			Dust:      cfg.DustCount,
			Ticks:     result.Ticks,
			Delta:     1.0 / 60,
			ElapsedMS: float64(result.Elapsed) / float64(time.Millisecond),
			Metrics:   result.Metrics,
		}, tickMean.Samples(), renders.Samples())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func plotFrames(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list saved bench runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tSIZE\tPOOLS\tTICKS\tTICK MS\tSEED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d/%d\t%d\t%.4f\t%d\n",
					run.ID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Width, run.Height,
					run.Particles, run.Dust,
					run.Ticks,
					run.Metrics["frame_ms_mean"],
					run.Seed,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the frame timings of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			run, err := st.Load(args[0])
			if err != nil {
				return err
			}
			ticks, renders, err := st.LoadFrames(args[0])
			if err != nil {
				return err
			}
			if len(ticks) == 0 {
				return fmt.Errorf("no data to plot")
			}

			fmt.Printf("run: %s\n", run.ID)
			fmt.Printf("samples: %d\n\n", len(ticks))
			fmt.Println(plotFrames(ticks, "tick ms"))
			fmt.Println()
			fmt.Println(plotFrames(renders, "render ms"))
			return nil
		},
	}
}
