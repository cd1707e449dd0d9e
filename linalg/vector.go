package linalg

import (
	"fmt"
	"math/big"
	"strings"
)

// Vector is a dense vector with exact rational entries. All operations
// return fresh vectors and never mutate their receivers or arguments, so
// vectors may be shared freely across samplers.
type Vector []*big.Rat

// NewVectorInt64 builds a vector from int64 coordinates.
func NewVectorInt64(coords []int64) Vector {
	v := make(Vector, len(coords))
	for i, x := range coords {
		v[i] = new(big.Rat).SetInt64(x)
	}
	return v
}

// NewVectorRat builds a vector copying the given rational coordinates.
func NewVectorRat(coords []*big.Rat) Vector {
	v := make(Vector, len(coords))
	for i, x := range coords {
		v[i] = new(big.Rat).Set(x)
	}
	return v
}

// ZeroVector returns the zero vector of length n.
func ZeroVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = new(big.Rat)
	}
	return v
}

// Clone returns a deep copy.
func (v Vector) Clone() Vector {
	return NewVectorRat(v)
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Rat).Add(v[i], w[i])
	}
	return out
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Rat).Sub(v[i], w[i])
	}
	return out
}

// ScaleInt returns z*v for an integer scalar z.
func (v Vector) ScaleInt(z int64) Vector {
	s := new(big.Rat).SetInt64(z)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Rat).Mul(v[i], s)
	}
	return out
}

// Dot returns the inner product <v, w>.
func (v Vector) Dot(w Vector) *big.Rat {
	acc := new(big.Rat)
	t := new(big.Rat)
	for i := range v {
		acc.Add(acc, t.Mul(v[i], w[i]))
	}
	return acc
}

// NormSquared returns <v, v> exactly.
func (v Vector) NormSquared() *big.Rat {
	return v.Dot(v)
}

// Norm returns the Euclidean norm rounded to prec bits.
func (v Vector) Norm(prec uint) *big.Float {
	nsq := new(big.Float).SetPrec(prec).SetRat(v.NormSquared())
	return new(big.Float).SetPrec(prec).Sqrt(nsq)
}

// Float converts the vector to big.Float coordinates at prec bits.
func (v Vector) Float(prec uint) []*big.Float {
	out := make([]*big.Float, len(v))
	for i := range v {
		out[i] = new(big.Float).SetPrec(prec).SetRat(v[i])
	}
	return out
}

// IsIntegral reports whether every coordinate is an integer.
func (v Vector) IsIntegral() bool {
	for i := range v {
		if !v[i].IsInt() {
			return false
		}
	}
	return true
}

// IsZero reports whether every coordinate is zero.
func (v Vector) IsZero() bool {
	for i := range v {
		if v[i].Sign() != 0 {
			return false
		}
	}
	return true
}

// Equal reports coordinate-wise equality.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i].Cmp(w[i]) != 0 {
			return false
		}
	}
	return true
}

// String renders the vector as (x_1, ..., x_n).
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i := range v {
		parts[i] = v[i].RatString()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
