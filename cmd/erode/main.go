package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ricardoprins/TerrainErosion/internal/app"
	"github.com/ricardoprins/TerrainErosion/internal/core"
	"github.com/ricardoprins/TerrainErosion/internal/erosion"
	"github.com/ricardoprins/TerrainErosion/internal/world"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 20, "erosion steps to run")
	batch := flag.Int("batch", 250, "droplets between interrupt checks")
	random := flag.Bool("random", false, "start from a random tile instead of -x/-y")
	listParams := flag.Bool("params", false, "print the session parameters and exit")
	verbose := flag.Bool("v", false, "log every step")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	w, err := world.New(cfg.WorldConfig())
	if err != nil {
		log.Fatal(err)
	}
	if *listParams {
		printParams(w.Parameters())
		return
	}
	if *random {
		if err := w.ResetRandom(); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	x, y := w.Coords()
	before := w.Stats()
	slog.Info("tile generated",
		"generator", w.Name(),
		"x", x,
		"y", y,
		"size", w.Size().W,
		"min", fmt.Sprintf("%.3f", before.Min),
		"max", fmt.Sprintf("%.3f", before.Max),
		"mean", fmt.Sprintf("%.3f", before.Mean),
	)

	start := time.Now()
	total := erosion.RunStats{}
	for i := 0; i < *steps; i++ {
		err := w.StepContext(ctx, *batch)
		run := w.Simulator().LastRun()
		total.Merge(run)
		if errors.Is(err, context.Canceled) {
			slog.Warn("interrupted", "step", i+1, "droplets", total.Droplets)
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		slog.Debug("step",
			"step", i+1,
			"droplets", run.Droplets,
			"avg_steps", fmt.Sprintf("%.2f", avgSteps(run)),
			"eroded", fmt.Sprintf("%.4f", run.Eroded),
			"deposited", fmt.Sprintf("%.4f", run.Deposited),
		)
	}

	after := w.Stats()
	change := w.Change()
	slog.Info("erosion finished",
		"steps", w.Steps(),
		"droplets", total.Droplets,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"min", fmt.Sprintf("%.3f", after.Min),
		"max", fmt.Sprintf("%.3f", after.Max),
		"non_finite", after.NonFinite,
		"max_cut", fmt.Sprintf("%.4f", change.MaxCut),
		"max_fill", fmt.Sprintf("%.4f", change.MaxFill),
		"net", fmt.Sprintf("%.4f", change.Net),
		"moved", change.Moved,
		"max_steps", total.Terminations[erosion.MaxSteps],
		"zero_velocity", total.Terminations[erosion.ZeroVelocity],
		"out_of_bounds", total.Terminations[erosion.OutOfBounds],
	)
}

func avgSteps(run erosion.RunStats) float64 {
	if run.Droplets == 0 {
		return 0
	}
	return float64(run.Steps) / float64(run.Droplets)
}

func printParams(snap core.ParameterSnapshot) {
	for _, group := range snap.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, p := range group.Params {
			fmt.Printf("  %s=%s\n", p.Key, p.Value)
		}
	}
}
