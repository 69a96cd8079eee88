package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/app"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/gui"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/tui"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	// overrides, applied only when the flag was set
	width    int
	height   int
	scale    int
	fill     float64
	interval time.Duration
	seed     uint64
	radius   int
	shape    string
	decay    float32
	workers  int
	backend  string
	// run
	runGenerations int
	runs           int
	live           bool
	frameRate      int
	// bench
	benchGenerations int
	benchWorkers     []int
	// config init
	force bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("lifesim", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lifesim",
		Short:         "interactive game of life",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&width, "width", config.DefaultWidth, "display width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "display height in pixels")
	pf.IntVar(&scale, "scale", config.DefaultScale, "display pixels per cell")
	pf.Float64Var(&fill, "fill", life.DefaultFillProbability, "initial live cell probability")
	pf.DurationVar(&interval, "interval", 100*time.Millisecond, "time between generations")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&radius, "radius", life.DefaultBrushRadius, "brush radius")
	pf.StringVar(&shape, "shape", life.Square.String(), "brush shape (square, checkerboard, circle, diamond)")
	pf.Float32Var(&decay, "decay", 0.7, "trail fade factor per generation")
	pf.IntVar(&workers, "workers", 0, "transition workers (0 = one per CPU)")
	pf.StringVar(&backend, "backend", config.BackendAuto, "compute backend (auto, serial, cpu)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the raylib window (default)",
		RunE:  runGUI,
	}

	ebitenCmd := &cobra.Command{
		Use:   "ebiten",
		Short: "open the ebiten window (needs -tags ebiten)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()
			return app.Run(cfg, logger)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to bubbletea, logs only go to --log-file
			cfg, logger, closeLog, err := setup(cmd, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()
			return tui.Run(cfg, logger)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runGenerations, "generations", 500, "generations to run")
	runCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the board in the terminal while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure generations per second per worker count",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchGenerations, "generations", 200, "generations per measurement")
	benchCmd.Flags().IntSliceVar(&benchWorkers, "workers-list", nil, "worker counts to measure (default 1,2,4,... up to NumCPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configInit,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective config",
		RunE:  configShow,
	}
	configCmd.AddCommand(initCmd, showCmd)

	rootCmd.AddCommand(guiCmd, ebitenCmd, tuiCmd, runCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	return gui.Run(cfg, logger)
}

// setup resolves the effective config and builds the logger. Logs go to
// --log-file when given, otherwise to out. The returned func closes the log
// file and must be called once the command is done logging.
func setup(cmd *cobra.Command, out io.Writer) (*config.Config, *log.Logger, func(), error) {
	closeLog := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	}
	logger, err := newLogger(out, logLevel)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

func newLogger(out io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(out, log.Options{
		Prefix:          "lifesim",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           lvl,
	}), nil
}

// loadConfig layers defaults, preset, config file and changed flags, in that
// order.
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
	if flags.Changed("width") {
		cfg.Display.Width = width
	}
	if flags.Changed("height") {
		cfg.Display.Height = height
	}
	if flags.Changed("scale") {
		cfg.Display.Scale = scale
	}
	if flags.Changed("fill") {
		cfg.Sim.FillProbability = fill
	}
	if flags.Changed("interval") {
		cfg.Sim.TickInterval = interval
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("radius") {
		cfg.Brush.Radius = radius
	}
	if flags.Changed("shape") {
		s, err := life.ParseBrushShape(shape)
		if err != nil {
			return nil, err
		}
		cfg.Brush.Shape = s
	}
	if flags.Changed("decay") {
		cfg.Render.Decay = decay
	}
	if flags.Changed("workers") {
		cfg.Compute.Workers = workers
	}
	if flags.Changed("backend") {
		cfg.Compute.Backend = backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
