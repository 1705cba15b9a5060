// Command rollout runs a random-policy rollout through a vectorized
// grid-world environment and reports per-episode statistics.
package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/environment/vector"
	"github.com/samuelfneumann/govecenv/minigrid"
	"github.com/samuelfneumann/govecenv/spaces"
)

var (
	envID       string
	numEnvs     int
	seed        uint64
	frameStack  int
	deviceToken string
	fullyObs    bool
	steps       int
	plotFile    string
	renderDir   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rollout",
		Short: "Run a random-policy rollout through a vectorized " +
			"grid-world environment",
		RunE: rollout,
	}

	rootCmd.Flags().StringVar(&envID, "env", "MiniGrid-Empty-8x8-v0",
		"environment identifier")
	rootCmd.Flags().IntVar(&numEnvs, "num-envs", 4,
		"number of parallel environments")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	rootCmd.Flags().IntVar(&frameStack, "frame-stack", 1,
		"number of stacked frames")
	rootCmd.Flags().StringVar(&deviceToken, "device", "cpu",
		"device on which to materialize tensors")
	rootCmd.Flags().BoolVar(&fullyObs, "fully-observable", true,
		"observe the full grid as an image")
	rootCmd.Flags().IntVar(&steps, "steps", 2000,
		"number of vectorized steps to run")
	rootCmd.Flags().StringVar(&plotFile, "plot", "",
		"write an HTML chart of episode returns to this file")
	rootCmd.Flags().StringVar(&renderDir, "render", "",
		"write rendered PNG frames of a standalone episode to this "+
			"directory")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func rollout(cmd *cobra.Command, args []string) error {
	device, err := environment.NewDevice(deviceToken)
	if err != nil {
		return err
	}

	env, err := minigrid.MakeVecEnv(envID, numEnvs, fullyObs, seed,
		frameStack, device)
	if err != nil {
		return err
	}
	defer env.Close()

	obs, _, err := env.Reset()
	if err != nil {
		return err
	}
	fmt.Printf("%v x%d on %v, observations %v\n", envID, numEnvs, device,
		obs.Shape())

	actionSpace := env.ActionSpace()
	actionSpace.Seed(seed)

	var returns []float64
	for step := 0; step < steps; step++ {
		_, _, _, _, info, err := env.Step(sampleActions(actionSpace,
			numEnvs))
		if err != nil {
			return err
		}

		stats, ok := info[vector.Episode].([]vector.EpisodeStats)
		if !ok {
			continue
		}
		for _, stat := range stats {
			returns = append(returns, stat.Return)
			report(len(returns), stat)
		}
	}

	if plotFile != "" {
		if err := plotReturns(returns, plotFile); err != nil {
			return err
		}
		fmt.Printf("wrote %v episode returns to %v\n", len(returns),
			plotFile)
	}

	if renderDir != "" {
		if err := renderEpisode(renderDir); err != nil {
			return err
		}
	}
	return nil
}

// report prints the statistics of one completed episode
func report(episode int, stat vector.EpisodeStats) {
	if stat.Return > 0 {
		fmt.Printf("episode %4d  env %d  %v  length %v\n", episode,
			stat.Env, aurora.Green(fmt.Sprintf("return %.3f", stat.Return)),
			stat.Length)
	} else {
		fmt.Printf("episode %4d  env %d  %v  length %v\n", episode,
			stat.Env, aurora.Red(fmt.Sprintf("return %.3f", stat.Return)),
			stat.Length)
	}
}

// sampleActions samples one action per environment from the action
// space, shaped (N, 1) to exercise the adapter's action squeezing
func sampleActions(space spaces.Space, n int) *tensor.Dense {
	backing := make([]float64, n)
	for i := range backing {
		backing[i] = space.Sample()[0].AtVec(0)
	}
	return tensor.New(tensor.WithShape(n, 1), tensor.WithBacking(backing))
}

// plotReturns writes an HTML line chart of episode returns
func plotReturns(returns []float64, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%v random-policy episode returns", envID),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	episodes := make([]string, len(returns))
	items := make([]opts.LineData, len(returns))
	for i, r := range returns {
		episodes[i] = fmt.Sprintf("%d", i+1)
		items[i] = opts.LineData{Value: r}
	}
	line.SetXAxis(episodes).AddSeries("return", items)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

// renderEpisode runs one standalone episode with random actions and
// writes a rendered PNG frame per step
func renderEpisode(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	env, err := minigrid.Make(envID)
	if err != nil {
		return err
	}
	env.Seed(seed)

	if _, _, err := env.Reset(); err != nil {
		return err
	}

	actionSpace := env.ActionSpace()
	actionSpace.Seed(seed)

	for frame := 0; ; frame++ {
		if err := writeFrame(env, dir, frame); err != nil {
			return err
		}

		action := tensor.New(tensor.WithShape(1), tensor.WithBacking(
			[]float64{actionSpace.Sample()[0].AtVec(0)}))
		_, _, terminated, truncated, _, err := env.Step(action)
		if err != nil {
			return err
		}
		if terminated || truncated {
			return writeFrame(env, dir, frame+1)
		}
	}
}

// writeFrame renders the current state of env into a PNG file
func writeFrame(env *minigrid.MiniGrid, dir string, frame int) error {
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("frame_%04d.png",
		frame)))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, env.Render())
}
