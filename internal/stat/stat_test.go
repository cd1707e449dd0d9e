package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWelford(t *testing.T) {
	var w Welford
	require.True(t, math.IsNaN(w.Variance()))

	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Add(x)
	}
	require.Equal(t, 8, w.N())
	require.InDelta(t, 5.0, w.Mean(), 1e-12)
	require.InDelta(t, 32.0/7.0, w.Variance(), 1e-12)
	require.InDelta(t, math.Sqrt(32.0/7.0), w.StdDev(), 1e-12)
}
