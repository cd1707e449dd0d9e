package dgauss

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"

	"lattice-dgs/linalg"
)

// ErrNotIdentityBasis is returned by NormalizationZZ when the sampler's
// basis is not the identity matrix.
var ErrNotIdentityBasis = errors.New("dgauss: normalization is only implemented for the identity basis")

// LatticeSampler draws vectors from the lattice spanned by the rows of a
// basis B, following a discrete Gaussian of width sigma centered at c
// (GPV/Klein algorithm, [GPV08]). The Gram-Schmidt basis is computed once
// at construction; when c lies exactly on the lattice, sampling shortcuts
// to m independent per-row integer samplers.
//
// A LatticeSampler's configuration is immutable after construction. It is
// not safe for concurrent use because the underlying Source is not.
//
// [GPV08] Gentry, Peikert, Vaikuntanathan. How to Use a Short Basis:
// Trapdoors for Hard Lattices and New Cryptographic Constructions. STOC'08.
type LatticeSampler struct {
	b     *linalg.Matrix
	g     *linalg.Matrix
	sigma *big.Float
	c     linalg.Vector
	prec  uint
	src   *Source

	cInLattice bool
	perRow     []*IntegerSampler // fast path only, one per basis row
}

// ComputePrecision resolves the working precision: an explicit precision of
// 0 means "use sigma's native precision"; the result is clamped to at least
// 53 bits.
func ComputePrecision(precision uint, sigma *big.Float) uint {
	if precision == 0 && sigma != nil {
		precision = sigma.Prec()
	}
	if precision < 53 {
		precision = 53
	}
	return precision
}

// NewLatticeSampler constructs a sampler over the lattice spanned by the
// rows of b with width sigma and center c. A nil c means the origin; a
// non-nil c must have length b.NCols(). precision 0 derives the working
// precision from sigma.
//
// The rows of b must be linearly independent (ErrDependentRows otherwise).
// When c is a lattice point, sigma <= 0 is reported here; for general
// centers it surfaces on the first Sample call.
func NewLatticeSampler(b *linalg.Matrix, sigma *big.Float, c linalg.Vector, precision uint, src *Source) (*LatticeSampler, error) {
	if b == nil {
		return nil, errors.New("dgauss: nil basis")
	}
	if sigma == nil {
		return nil, ErrSigmaNotPositive
	}
	if src == nil {
		return nil, errors.New("dgauss: nil randomness source")
	}
	prec := ComputePrecision(precision, sigma)

	g, err := b.GramSchmidt()
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = linalg.ZeroVector(b.NCols())
	} else if len(c) != b.NCols() {
		return nil, fmt.Errorf("dgauss: center has length %d, ambient dimension is %d", len(c), b.NCols())
	}

	s := &LatticeSampler{
		b:     b,
		g:     g,
		sigma: new(big.Float).SetPrec(prec).Set(sigma),
		c:     c.Clone(),
		prec:  prec,
		src:   src,
	}

	// c is on the lattice iff w*B = c has an integral solution.
	w, err := b.SolveLeft(s.c)
	if err == nil && w.IsIntegral() {
		s.cInLattice = true
		s.perRow = make([]*IntegerSampler, b.NRows())
		for i := 0; i < b.NRows(); i++ {
			sigmaI := new(big.Float).SetPrec(prec).Quo(s.sigma, g.Row(i).Norm(prec))
			d, err := NewIntegerSampler(sigmaI, nil, prec, AlgUniformTable, src)
			if err != nil {
				return nil, err
			}
			s.perRow[i] = d
		}
	} else if err != nil && !errors.Is(err, linalg.ErrInconsistentSystem) {
		return nil, err
	}
	return s, nil
}

// Sigma returns the Gaussian width parameter. Samples have expected norm
// about sqrt(m)*sigma where m is the lattice rank.
func (s *LatticeSampler) Sigma() *big.Float { return new(big.Float).Copy(s.sigma) }

// C returns the configured center.
func (s *LatticeSampler) C() linalg.Vector { return s.c.Clone() }

// Precision returns the working bit precision.
func (s *LatticeSampler) Precision() uint { return s.prec }

// Sample draws one lattice vector. Draws are independent across calls.
func (s *LatticeSampler) Sample() (linalg.Vector, error) {
	if s.b.NRows() == 0 {
		return linalg.ZeroVector(s.b.NCols()), nil
	}
	if s.cInLattice {
		return s.sampleInLattice(), nil
	}
	return s.sampleGeneral()
}

// sampleInLattice draws m independent integers from the precomputed per-row
// samplers and returns their combination shifted by c.
func (s *LatticeSampler) sampleInLattice() linalg.Vector {
	v := s.c.Clone()
	for i, d := range s.perRow {
		if z := d.Sample(); z != 0 {
			v = v.Add(s.b.Row(i).ScaleInt(z))
		}
	}
	return v
}

// sampleGeneral runs the GPV recursion over the basis rows in reverse,
// drawing each coordinate from a 1-D Gaussian centered at the projection of
// the remaining center onto the Gram-Schmidt vector. The accumulated v is
// returned as-is; the original center is not re-added on this path.
func (s *LatticeSampler) sampleGeneral() (linalg.Vector, error) {
	v := linalg.ZeroVector(s.b.NCols())
	c := s.c.Clone()
	for i := s.b.NRows() - 1; i >= 0; i-- {
		gi := s.g.Row(i)
		proj := new(big.Rat).Quo(c.Dot(gi), gi.NormSquared())
		cI := new(big.Float).SetPrec(s.prec).SetRat(proj)
		sigmaI := new(big.Float).SetPrec(s.prec).Quo(s.sigma, gi.Norm(s.prec))
		d, err := NewIntegerSampler(sigmaI, cI, s.prec, AlgUniformOnline, s.src)
		if err != nil {
			return nil, err
		}
		z := d.Sample()
		step := s.b.Row(i).ScaleInt(z)
		c = c.Sub(step)
		v = v.Add(step)
	}
	return v, nil
}

// Density evaluates the unnormalized density f(x) =
// exp(-|x-c|^2/(2*sigma^2)) at the working precision.
func (s *LatticeSampler) Density(x linalg.Vector) (*big.Float, error) {
	if len(x) != s.b.NCols() {
		return nil, fmt.Errorf("dgauss: point has length %d, ambient dimension is %d", len(x), s.b.NCols())
	}
	nsq := new(big.Float).SetPrec(s.prec).SetRat(x.Sub(s.c).NormSquared())
	twoSigmaSq := new(big.Float).SetPrec(s.prec).Mul(s.sigma, s.sigma)
	twoSigmaSq.Add(twoSigmaSq, twoSigmaSq)
	t := nsq.Quo(nsq, twoSigmaSq)
	return bigfloat.Exp(t.Neg(t)), nil
}

// NormalizationZZ approximates the partition function
// sum_{x in Z^n} exp(-|x|^2/(2*sigma^2)) by enumerating all integer vectors
// with coordinates in [-ceil(tau*sigma), ceil(tau*sigma)). Only implemented
// when the basis is the identity matrix over Z^n.
func (s *LatticeSampler) NormalizationZZ(tau int) (*big.Float, error) {
	if !s.b.IsIdentity() {
		return nil, ErrNotIdentityBasis
	}
	n := s.b.NCols()
	if n <= 0 {
		return nil, fmt.Errorf("dgauss: ambient dimension must be positive, got %d", n)
	}
	if tau <= 0 {
		return nil, fmt.Errorf("dgauss: tau must be positive, got %d", tau)
	}
	bound := ceilInt64(new(big.Float).SetPrec(s.prec).Mul(s.sigma, new(big.Float).SetInt64(int64(tau))))
	if bound <= 0 {
		return nil, ErrSigmaNotPositive
	}

	sum := new(big.Float).SetPrec(s.prec)
	coords := make([]int64, n)
	for i := range coords {
		coords[i] = -bound
	}
	for {
		f, err := s.Density(linalg.NewVectorInt64(coords))
		if err != nil {
			return nil, err
		}
		sum.Add(sum, f)

		// Odometer step over [-bound, bound)^n, upper bound exclusive.
		i := 0
		for ; i < n; i++ {
			coords[i]++
			if coords[i] < bound {
				break
			}
			coords[i] = -bound
		}
		if i == n {
			break
		}
	}
	return sum, nil
}

// String describes the sampler configuration and basis.
func (s *LatticeSampler) String() string {
	return fmt.Sprintf("Discrete Gaussian sampler with sigma = %s, c=%s over lattice with basis\n\n%s",
		s.sigma.Text('f', 6), s.c, s.b)
}
