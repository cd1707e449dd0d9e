// Package linalg provides the exact rational linear algebra needed by the
// lattice samplers: row-basis matrices, Gram-Schmidt orthogonalization and
// solving w*B = c over the rationals. Everything is computed with big.Rat
// so lattice-membership decisions are exact rather than floating-point.
package linalg

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrDependentRows reports a zero Gram-Schmidt vector, i.e. the rows of
	// the matrix are not linearly independent.
	ErrDependentRows = errors.New("linalg: rows are linearly dependent")
	// ErrInconsistentSystem reports that w*B = c has no rational solution.
	ErrInconsistentSystem = errors.New("linalg: no solution to w*B = c")
)

// Matrix is a row-major m x n matrix with exact rational entries. Rows are
// immutable after construction; Row returns a view that must not be written.
type Matrix struct {
	rows []Vector
	m, n int
}

// NewMatrix builds a matrix copying the given rows. All rows must share the
// same length and there must be at least one row; use NewEmptyMatrix for the
// degenerate zero-row case.
func NewMatrix(rows []Vector) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, errors.New("linalg: matrix needs at least one row")
	}
	n := len(rows[0])
	cp := make([]Vector, len(rows))
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("linalg: row %d has length %d, want %d", i, len(r), n)
		}
		cp[i] = r.Clone()
	}
	return &Matrix{rows: cp, m: len(cp), n: n}, nil
}

// NewMatrixInt64 builds a matrix from int64 rows.
func NewMatrixInt64(rows [][]int64) (*Matrix, error) {
	conv := make([]Vector, len(rows))
	for i, r := range rows {
		conv[i] = NewVectorInt64(r)
	}
	return NewMatrix(conv)
}

// NewEmptyMatrix returns the 0 x n matrix, the basis of the trivial lattice
// inside an n-dimensional ambient space.
func NewEmptyMatrix(n int) *Matrix {
	return &Matrix{rows: nil, m: 0, n: n}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	rows := make([]Vector, n)
	for i := 0; i < n; i++ {
		rows[i] = ZeroVector(n)
		rows[i][i] = big.NewRat(1, 1)
	}
	return &Matrix{rows: rows, m: n, n: n}
}

// NRows returns the number of rows (basis vectors).
func (b *Matrix) NRows() int { return b.m }

// NCols returns the ambient dimension.
func (b *Matrix) NCols() int { return b.n }

// Row returns the i-th row. The returned vector shares storage with the
// matrix and must be treated as read-only.
func (b *Matrix) Row(i int) Vector { return b.rows[i] }

// Equal reports entry-wise equality.
func (b *Matrix) Equal(o *Matrix) bool {
	if b.m != o.m || b.n != o.n {
		return false
	}
	for i := range b.rows {
		if !b.rows[i].Equal(o.rows[i]) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether b is a square identity matrix.
func (b *Matrix) IsIdentity() bool {
	if b.m != b.n {
		return false
	}
	one := big.NewRat(1, 1)
	for i, r := range b.rows {
		for j := range r {
			if i == j {
				if r[j].Cmp(one) != 0 {
					return false
				}
			} else if r[j].Sign() != 0 {
				return false
			}
		}
	}
	return true
}

// GramSchmidt returns the orthogonal (not normalized) basis derived from the
// rows of b: G[i] = B[i] - sum_{j<i} (<B[i],G[j]>/<G[j],G[j]>) G[j].
// G[i] spans the same flag of subspaces as B[0..i]. Returns ErrDependentRows
// when some G[i] vanishes.
func (b *Matrix) GramSchmidt() (*Matrix, error) {
	g := make([]Vector, b.m)
	for i := 0; i < b.m; i++ {
		gi := b.rows[i].Clone()
		for j := 0; j < i; j++ {
			num := b.rows[i].Dot(g[j])
			den := g[j].NormSquared()
			mu := new(big.Rat).Quo(num, den)
			for k := range gi {
				gi[k].Sub(gi[k], new(big.Rat).Mul(mu, g[j][k]))
			}
		}
		if gi.IsZero() {
			return nil, ErrDependentRows
		}
		g[i] = gi
	}
	return &Matrix{rows: g, m: b.m, n: b.n}, nil
}

// SolveLeft solves w*B = c for w over the rationals by Gaussian elimination
// on the transposed system. For a basis with independent rows the solution
// is unique when it exists; ErrInconsistentSystem signals that c lies
// outside the row span, ErrDependentRows that fewer than m pivots were
// found.
func (b *Matrix) SolveLeft(c Vector) (Vector, error) {
	if len(c) != b.n {
		return nil, fmt.Errorf("linalg: rhs length %d, want %d", len(c), b.n)
	}
	if b.m == 0 {
		if !c.IsZero() {
			return nil, ErrInconsistentSystem
		}
		return Vector{}, nil
	}

	// Augmented system [B^T | c]: n equations in m unknowns.
	aug := make([]Vector, b.n)
	for eq := 0; eq < b.n; eq++ {
		row := make(Vector, b.m+1)
		for k := 0; k < b.m; k++ {
			row[k] = new(big.Rat).Set(b.rows[k][eq])
		}
		row[b.m] = new(big.Rat).Set(c[eq])
		aug[eq] = row
	}

	pivotEq := make([]int, 0, b.m)
	eq := 0
	for col := 0; col < b.m && eq < b.n; col++ {
		piv := -1
		for r := eq; r < b.n; r++ {
			if aug[r][col].Sign() != 0 {
				piv = r
				break
			}
		}
		if piv < 0 {
			continue
		}
		aug[eq], aug[piv] = aug[piv], aug[eq]
		inv := new(big.Rat).Inv(aug[eq][col])
		for k := col; k <= b.m; k++ {
			aug[eq][k].Mul(aug[eq][k], inv)
		}
		for r := 0; r < b.n; r++ {
			if r == eq || aug[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(aug[r][col])
			for k := col; k <= b.m; k++ {
				aug[r][k].Sub(aug[r][k], new(big.Rat).Mul(f, aug[eq][k]))
			}
		}
		pivotEq = append(pivotEq, col)
		eq++
	}

	if len(pivotEq) < b.m {
		return nil, ErrDependentRows
	}
	// Remaining equations must have vanished entirely.
	for r := eq; r < b.n; r++ {
		if aug[r][b.m].Sign() != 0 {
			return nil, ErrInconsistentSystem
		}
	}

	w := make(Vector, b.m)
	for i, col := range pivotEq {
		w[col] = new(big.Rat).Set(aug[i][b.m])
	}
	return w, nil
}

// String renders the matrix one bracketed row per line.
func (b *Matrix) String() string {
	lines := make([]string, b.m)
	for i, r := range b.rows {
		parts := make([]string, len(r))
		for j := range r {
			parts[j] = r[j].RatString()
		}
		lines[i] = "[" + strings.Join(parts, " ") + "]"
	}
	return strings.Join(lines, "\n")
}
