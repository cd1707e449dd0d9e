package linalg

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// gram3 is the Gram matrix of a rank-3 quadratic form, a convenient
// non-trivial basis.
func gram3(t *testing.T) *Matrix {
	t.Helper()
	b, err := NewMatrixInt64([][]int64{
		{2, 1, 1},
		{1, 2, 1},
		{1, 1, 2},
	})
	require.NoError(t, err)
	return b
}

// mulLeft computes w*B directly, as the reference for SolveLeft.
func mulLeft(w Vector, b *Matrix) Vector {
	out := ZeroVector(b.NCols())
	for i := 0; i < b.NRows(); i++ {
		for j := 0; j < b.NCols(); j++ {
			out[j].Add(out[j], new(big.Rat).Mul(w[i], b.Row(i)[j]))
		}
	}
	return out
}

func TestVectorOps(t *testing.T) {
	v := NewVectorInt64([]int64{3, 4})
	w := NewVectorInt64([]int64{1, -2})

	require.Equal(t, 0, v.Dot(w).Cmp(big.NewRat(-5, 1)))
	require.Equal(t, 0, v.NormSquared().Cmp(big.NewRat(25, 1)))
	norm, _ := v.Norm(53).Float64()
	require.InDelta(t, 5.0, norm, 1e-12)

	require.True(t, v.Add(w).Equal(NewVectorInt64([]int64{4, 2})))
	require.True(t, v.Sub(w).Equal(NewVectorInt64([]int64{2, 6})))
	require.True(t, v.ScaleInt(-3).Equal(NewVectorInt64([]int64{-9, -12})))
	require.True(t, v.IsIntegral())
	require.False(t, Vector{big.NewRat(1, 2)}.IsIntegral())
	require.True(t, ZeroVector(4).IsZero())
	require.Equal(t, "(3, 4)", v.String())
}

func TestGramSchmidtOrthogonal(t *testing.T) {
	b := gram3(t)
	g, err := b.GramSchmidt()
	require.NoError(t, err)

	// First vector is untouched, later ones are orthogonal to all earlier.
	require.True(t, g.Row(0).Equal(b.Row(0)))
	for i := 0; i < g.NRows(); i++ {
		require.NotEqual(t, 0, g.Row(i).NormSquared().Sign())
		for j := 0; j < i; j++ {
			require.Equal(t, 0, g.Row(i).Dot(g.Row(j)).Sign(), "rows %d and %d not orthogonal", i, j)
		}
	}
}

func TestGramSchmidtDependentRows(t *testing.T) {
	b, err := NewMatrixInt64([][]int64{
		{1, 2},
		{2, 4},
	})
	require.NoError(t, err)
	_, err = b.GramSchmidt()
	require.ErrorIs(t, err, ErrDependentRows)
}

func TestSolveLeftIntegral(t *testing.T) {
	b := gram3(t)
	want := NewVectorInt64([]int64{1, 2, -3})
	c := mulLeft(want, b)

	w, err := b.SolveLeft(c)
	require.NoError(t, err)
	require.True(t, w.Equal(want))
	require.True(t, w.IsIntegral())
}

func TestSolveLeftRational(t *testing.T) {
	b := gram3(t)
	c := NewVectorInt64([]int64{1, 0, 0})

	w, err := b.SolveLeft(c)
	require.NoError(t, err)
	require.False(t, w.IsIntegral())
	require.True(t, mulLeft(w, b).Equal(c))
}

func TestSolveLeftInconsistent(t *testing.T) {
	b, err := NewMatrixInt64([][]int64{{1, 0, 0}})
	require.NoError(t, err)

	_, err = b.SolveLeft(NewVectorInt64([]int64{0, 1, 0}))
	require.ErrorIs(t, err, ErrInconsistentSystem)

	w, err := b.SolveLeft(NewVectorInt64([]int64{7, 0, 0}))
	require.NoError(t, err)
	require.True(t, w.Equal(NewVectorInt64([]int64{7})))
}

func TestSolveLeftDimensionMismatch(t *testing.T) {
	b := gram3(t)
	_, err := b.SolveLeft(NewVectorInt64([]int64{1, 2}))
	require.Error(t, err)
}

func TestEmptyMatrix(t *testing.T) {
	b := NewEmptyMatrix(3)
	require.Equal(t, 0, b.NRows())
	require.Equal(t, 3, b.NCols())

	g, err := b.GramSchmidt()
	require.NoError(t, err)
	require.Equal(t, 0, g.NRows())

	w, err := b.SolveLeft(ZeroVector(3))
	require.NoError(t, err)
	require.Len(t, w, 0)

	_, err = b.SolveLeft(NewVectorInt64([]int64{1, 0, 0}))
	require.ErrorIs(t, err, ErrInconsistentSystem)
}

func TestIdentity(t *testing.T) {
	id := Identity(4)
	require.True(t, id.IsIdentity())
	require.False(t, gram3(t).IsIdentity())
	require.True(t, id.Equal(Identity(4)))
	require.False(t, id.Equal(Identity(3)))

	g, err := id.GramSchmidt()
	require.NoError(t, err)
	require.True(t, g.Equal(id))
}

func TestMatrixString(t *testing.T) {
	b, err := NewMatrixInt64([][]int64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	require.Equal(t, "[1 0]\n[0 1]", b.String())
}
