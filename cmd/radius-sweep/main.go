package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ricardoprins/TerrainErosion/internal/app"
	"github.com/ricardoprins/TerrainErosion/internal/core"
	"github.com/ricardoprins/TerrainErosion/internal/erosion"
	"github.com/ricardoprins/TerrainErosion/internal/world"
)

type scenario struct {
	radius int
	seed   int64
}

func (s scenario) String() string {
	return fmt.Sprintf("radius=%d erosion_seed=%d", s.radius, s.seed)
}

type scenarioResult struct {
	scenario scenario
	err      error

	change   world.Change
	before   core.Stats
	after    core.Stats
	run      erosion.RunStats
	duration time.Duration
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 20, "erosion steps per scenario")
	seeds := flag.Int("seeds", 3, "erosion seeds per radius")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	base := cfg.WorldConfig()
	probe, err := world.New(base)
	if err != nil {
		log.Fatal(err)
	}
	lo, hi := radiusBounds(probe.ParameterControls())

	var sets []scenario
	for r := lo; r <= hi; r++ {
		for s := 0; s < *seeds; s++ {
			sets = append(sets, scenario{radius: r, seed: base.Erosion.Seed + int64(s)})
		}
	}

	x, y := probe.Coords()
	fmt.Printf("Sweeping %d scenarios on %s tile (%d,%d) (%d workers, %d steps of %d droplets)\n",
		len(sets), probe.Name(), x, y, *workers, *steps, base.Iterations)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			fmt.Printf("%s failed: %v\n", res.scenario, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].scenario.radius != all[j].scenario.radius {
			return all[i].scenario.radius < all[j].scenario.radius
		}
		return all[i].scenario.seed < all[j].scenario.seed
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, res := range all {
		fmt.Printf("%s  maxCut=%.4f maxFill=%.4f net=%.4f moved=%d h=[%.2f,%.2f]->[%.2f,%.2f] avgSteps=%.2f took=%s\n",
			res.scenario, res.change.MaxCut, res.change.MaxFill, res.change.Net, res.change.Moved,
			res.before.Min, res.before.Max, res.after.Min, res.after.Max,
			avgSteps(res.run), res.duration.Round(time.Millisecond))
	}

	fmt.Println("\nMean per radius:")
	for _, row := range summarize(all) {
		fmt.Printf("  radius=%d maxCut=%.4f net=%.4f moved=%.0f\n", row.radius, row.maxCut, row.net, row.moved)
	}
}

func runScenario(base world.Config, sc scenario, steps int) scenarioResult {
	cfg := base
	cfg.Erosion.Radius = sc.radius
	cfg.Erosion.Seed = sc.seed
	res := scenarioResult{scenario: sc}

	start := time.Now()
	w, err := world.New(cfg)
	if err != nil {
		res.err = err
		return res
	}
	res.before = w.Stats()
	for i := 0; i < steps; i++ {
		if err := w.Step(); err != nil {
			res.err = err
			return res
		}
		res.run.Merge(w.Simulator().LastRun())
	}
	res.after = w.Stats()
	res.change = w.Change()
	res.duration = time.Since(start)
	return res
}

// radiusBounds reads the radius slider range from the session controls.
func radiusBounds(controls []core.ParameterControl) (int, int) {
	for _, ctrl := range controls {
		if ctrl.Key == "radius" {
			return int(ctrl.Min), int(ctrl.Max)
		}
	}
	return erosion.MinRadius, erosion.MaxRadius
}

type radiusSummary struct {
	radius int
	maxCut float64
	net    float64
	moved  float64
}

func summarize(all []scenarioResult) []radiusSummary {
	byRadius := map[int]*radiusSummary{}
	counts := map[int]int{}
	for _, res := range all {
		r := res.scenario.radius
		row, ok := byRadius[r]
		if !ok {
			row = &radiusSummary{radius: r}
			byRadius[r] = row
		}
		row.maxCut += float64(res.change.MaxCut)
		row.net += res.change.Net
		row.moved += float64(res.change.Moved)
		counts[r]++
	}
	out := make([]radiusSummary, 0, len(byRadius))
	for r, row := range byRadius {
		n := float64(counts[r])
		out = append(out, radiusSummary{radius: r, maxCut: row.maxCut / n, net: row.net / n, moved: row.moved / n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].radius < out[j].radius })
	return out
}

func avgSteps(run erosion.RunStats) float64 {
	if run.Droplets == 0 {
		return 0
	}
	return float64(run.Steps) / float64(run.Droplets)
}
