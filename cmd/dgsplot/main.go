// Command dgsplot samples a 1-D discrete Gaussian over the integer lattice
// and renders an HTML bar chart comparing the empirical frequencies against
// the theoretical ones f(x)/Z, as a visual fidelity check for the samplers.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"lattice-dgs/dgauss"
	"lattice-dgs/internal/stat"
	"lattice-dgs/linalg"
)

func main() {
	var (
		sigma  = flag.Float64("sigma", 3.0, "Gaussian width parameter (> 0)")
		center = flag.Float64("center", 0, "center of the distribution")
		draws  = flag.Int("n", 100000, "number of samples to draw")
		tau    = flag.Int("tau", 3, "tail-cut parameter for the plotted window")
		seed   = flag.String("seed", "", "seed for a reproducible randomness stream (empty: crypto seed)")
		out    = flag.String("out", "dgsplot.html", "output HTML file")
	)
	flag.Parse()

	if err := run(*sigma, *center, *draws, *tau, *seed, *out); err != nil {
		fmt.Fprintln(os.Stderr, "dgsplot:", err)
		os.Exit(1)
	}
}

func run(sigma, center float64, draws, tau int, seed, out string) error {
	src, err := newSource(seed)
	if err != nil {
		return err
	}

	c := linalg.Vector{new(big.Rat).SetFloat64(center)}
	sampler, err := dgauss.NewLatticeSampler(linalg.Identity(1), big.NewFloat(sigma), c, 0, src)
	if err != nil {
		return err
	}

	counts := map[int64]int{}
	var acc stat.Welford
	for i := 0; i < draws; i++ {
		v, err := sampler.Sample()
		if err != nil {
			return err
		}
		x := v[0].Num().Int64()
		counts[x]++
		acc.Add(float64(x))
	}
	fmt.Printf("%s\n\n", sampler)
	fmt.Printf("draws=%d mean=%.4f stddev=%.4f\n", acc.N(), acc.Mean(), acc.StdDev())
	if z, err := sampler.NormalizationZZ(tau); err == nil {
		fmt.Printf("partition function (tau=%d): %s\n", tau, z.Text('f', 6))
	}

	return renderChart(sampler, counts, draws, sigma, center, tau, out)
}

func newSource(seed string) (*dgauss.Source, error) {
	if seed == "" {
		return dgauss.NewSource()
	}
	return dgauss.NewSeededSource([]byte(seed))
}

// renderChart writes a bar chart of empirical counts next to the expected
// counts n*f(x)/Z over the window |x - center| <= tau*sigma.
func renderChart(sampler *dgauss.LatticeSampler, counts map[int64]int, draws int, sigma, center float64, tau int, out string) error {
	lo := int64(center - float64(tau)*sigma - 1)
	hi := int64(center + float64(tau)*sigma + 1)

	// Normalize over the plotted window so fractional centers work too.
	z := new(big.Float)
	for x := lo; x <= hi; x++ {
		f, err := sampler.Density(linalg.NewVectorInt64([]int64{x}))
		if err != nil {
			return err
		}
		z.Add(z, f)
	}

	labels := make([]string, 0, hi-lo+1)
	empirical := make([]opts.BarData, 0, hi-lo+1)
	expected := make([]opts.BarData, 0, hi-lo+1)
	for x := lo; x <= hi; x++ {
		f, err := sampler.Density(linalg.NewVectorInt64([]int64{x}))
		if err != nil {
			return err
		}
		p, _ := new(big.Float).Quo(f, z).Float64()
		labels = append(labels, fmt.Sprintf("%d", x))
		empirical = append(empirical, opts.BarData{Value: counts[x]})
		expected = append(expected, opts.BarData{Value: p * float64(draws)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Discrete Gaussian over Z",
			Subtitle: fmt.Sprintf("sigma=%.3f center=%.3f n=%d", sigma, center, draws),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("empirical", empirical).
		AddSeries("expected", expected)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	fmt.Println("wrote", out)
	return nil
}
