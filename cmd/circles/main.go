package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/circles/internal/config"
	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/display/ebitenwin"
	"github.com/san-kum/circles/internal/display/headless"
	"github.com/san-kum/circles/internal/display/terminal"
	"github.com/san-kum/circles/internal/display/window"
	"github.com/san-kum/circles/internal/frame"
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/world"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	backend    string
	seed       uint64
	particles  int
	dust       int
	width      int
	height     int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "circles",
		Short:        "ambient particle field that follows the cursor",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".circles", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", 0, "particle count")
	rootCmd.PersistentFlags().IntVar(&dust, "dust", 0, "dust count")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "initial width in pixels")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "initial height in pixels")
	rootCmd.Flags().StringVar(&backend, "backend", "window", "display backend")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the animation in a display backend",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	runCmd.Flags().StringVar(&backend, "backend", "window", "display backend")

	rootCmd.AddCommand(runCmd, newBenchCmd(), newRunsCmd(), newPlotCmd(), newRecordCmd(),
		newSnapshotCmd(), newConfigCmd(), newPresetsCmd(), newBackendsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func backends() *display.Registry {
	r := display.NewRegistry()
	r.Register("window", "raylib window", window.Open)
	r.Register("ebiten", "ebiten window", ebitenwin.Open)
	r.Register("terminal", "braille rendering in the terminal", terminal.Open)
	r.Register("headless", "off-screen idle run", headless.Open)
	return r
}

// loadConfig layers preset, file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("particles") {
		cfg.ParticleCount = particles
	}
	if flags.Changed("dust") {
		cfg.DustCount = dust
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newWorld(cfg *config.Config) (*world.World, uint64, error) {
	s := cfg.ResolveSeed()
	w, err := world.New(cfg.World(s), geom.Viewport{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return nil, 0, err
	}
	return w, s, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
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

	disp, err := backends().Open(backend, display.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Title:      cfg.Title,
		VSync:      cfg.VSync,
		Background: pal.Background,
	})
	if err != nil {
		return err
	}
	fw, fh := disp.Size()
	w.Resize(fw, fh)
	slog.Debug("display open", "backend", backend, "width", fw, "height", fh, "format", disp.Format(), "seed", s)

	drv := frame.New(w, frame.Options{
		Palette:     pal,
		StrokeWidth: cfg.StrokeWidth,
		LogEvery:    cfg.FPSLogEvery(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := display.Finish(disp.Run(ctx, drv)); err != nil {
		return err
	}
	slog.Debug("display closed", "frames", drv.Frames())
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "print or write the effective config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := config.Save(args[0], cfg); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", args[0])
				return nil
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets and themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("themes:")
			fmt.Printf("  %s\n", strings.Join(config.ThemeNames(), ", "))
		},
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "list display backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := backends()
			for _, name := range r.List() {
				fmt.Printf("  %-10s %s\n", name, r.Help(name))
			}
		},
	}
}
