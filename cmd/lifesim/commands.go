package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/compute"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/tui"
)

const defaultConfigPath = "lifesim.yaml"

func headlessMetrics(samples int) []sim.Metric {
	return []sim.Metric{
		metrics.NewPopulation(),
		metrics.NewDensity(),
		metrics.NewChurn(),
		metrics.NewHistory(samples),
		metrics.NewCycleDetector(32),
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	if runGenerations < 1 {
		return fmt.Errorf("generations must be positive, got %d", runGenerations)
	}
	if runs > 1 {
		return runEnsemble(cmd, cfg)
	}

	out := cmd.OutOrStdout()
	w, h := cfg.GridSize()

	ms := headlessMetrics(runGenerations)
	history := ms[3].(*metrics.History)
	cycle := ms[4].(*metrics.CycleDetector)

	opts := []sim.Option{sim.WithLogger(logger), sim.WithBackend(cfg.Backend())}
	for _, m := range ms {
		opts = append(opts, sim.WithMetric(m))
	}
	if live {
		r := tui.NewLiveRenderer(out, 0, 0, frameRate)
		r.Start()
		defer r.Stop()
		opts = append(opts, sim.WithObserver(r))
	}

	s, err := sim.New(w, h, cfg.ToSim(), opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	s.Run(runGenerations)
	elapsed := time.Since(start)

	fmt.Fprintf(out, "\n%dx%d board, %d generations in %v (%s)\n\n", w, h, runGenerations, elapsed.Round(time.Millisecond), s.Backend().Name())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	res := s.Metrics()
	names := make([]string, 0, len(res))
	for name := range res {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.4g\n", name, res[name])
	}
	if cycle.Stable() {
		fmt.Fprintf(tw, "settled at\tgen %d\n", cycle.Since())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if samples := history.Samples(); len(samples) > 1 {
		graph := asciigraph.Plot(samples,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("population"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	w, h := cfg.GridSize()

	seedStart := cfg.Sim.Seed
	if seedStart == 0 {
		seedStart = uint64(time.Now().UnixNano())
	}
	ens := sim.NewEnsemble(w, h, cfg.ToSim(), runs, seedStart, func() []sim.Metric {
		return headlessMetrics(1)
	})

	start := time.Now()
	results, err := ens.Run(context.Background(), runGenerations)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d runs of %d generations on %dx%d in %v\n\n", runs, runGenerations, w, h, time.Since(start).Round(time.Millisecond))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tPOPULATION\tDENSITY\tCHURN\tPERIOD")
	final := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%.4f\t%.1f\t%.0f\n",
			r.Seed, r.Population, r.Metrics["density"], r.Metrics["churn"], r.Metrics["period"])
		final = append(final, float64(r.Population))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(final) > 1 {
		graph := asciigraph.Plot(final,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("final population by run"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func defaultWorkerCounts() []int {
	n := runtime.NumCPU()
	var counts []int
	for c := 1; c < n; c *= 2 {
		counts = append(counts, c)
	}
	return append(counts, n)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	if benchGenerations < 1 {
		return fmt.Errorf("generations must be positive, got %d", benchGenerations)
	}

	counts := benchWorkers
	if len(counts) == 0 {
		counts = defaultWorkerCounts()
	}

	w, h := cfg.GridSize()
	seedGrid, err := life.NewGrid(w, h)
	if err != nil {
		return err
	}
	s := cfg.Sim.Seed
	if s == 0 {
		s = 42
	}
	seedGrid.Randomize(rand.New(rand.NewPCG(s, s)), cfg.Sim.FillProbability)

	pool, err := sim.NewGridPool(w, h)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %dx%d board, %d generations\n\n", w, h, benchGenerations)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKERS\tBACKEND\tTIME\tGEN/SEC\tCELLS/SEC\tPOPULATION")

	wantPop := -1
	for _, n := range counts {
		if n < 1 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		engine := life.NewEngine(compute.AutoSelectBackend(n))
		cur := pool.GetAndCopy(seedGrid)
		next := pool.Get()

		start := time.Now()
		for i := 0; i < benchGenerations; i++ {
			if err := engine.Step(cur, next); err != nil {
				return err
			}
			cur, next = next, cur
		}
		elapsed := time.Since(start)

		pop := cur.Population()
		pool.Put(cur)
		pool.Put(next)

		if wantPop < 0 {
			wantPop = pop
		} else if pop != wantPop {
			logger.Warn("worker counts disagree", "workers", n, "population", pop, "want", wantPop)
		}

		gps := float64(benchGenerations) / elapsed.Seconds()
		fmt.Fprintf(tw, "%d\t%s\t%v\t%.1f\t%.3g\t%d\n",
			n, engine.Backend().Name(), elapsed.Round(time.Microsecond), gps, gps*float64(w*h), pop)
	}

	return tw.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTICK\tFILL\tSCALE\tBRUSH\tDECAY\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		c := p.Config
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%s r=%d\t%.2f\t%s\n",
			name, c.Sim.TickInterval, c.Sim.FillProbability, c.Display.Scale,
			c.Brush.Shape, c.Brush.Radius, c.Render.Decay, p.Description)
	}
	return tw.Flush()
}

func configInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
