package dgauss

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ALTree/bigfloat"
)

// Algorithm selects how an IntegerSampler draws its samples. All algorithms
// target the same distribution; they trade per-sample work against
// precomputed table memory.
type Algorithm int

const (
	// AlgUniformOnline rejects a uniform proposal over the tail-cut window,
	// computing each acceptance probability on the fly at the configured
	// precision. No tables; the right choice for throwaway samplers.
	AlgUniformOnline Algorithm = iota
	// AlgUniformTable is the same rejection loop with acceptance
	// probabilities precomputed once as 64-bit fixed-point values.
	AlgUniformTable
	// AlgCDT is inversion sampling against a cumulative distribution table:
	// one uniform word and a binary search per sample, no rejection.
	AlgCDT
)

// TailCut bounds the support of every sampler to [c - TailCut*sigma,
// c + TailCut*sigma]; mass beyond six sigmas is below 2^-25 per point.
const TailCut = 6

// ErrSigmaNotPositive is returned when a sampler is configured with
// sigma <= 0.
var ErrSigmaNotPositive = errors.New("dgauss: sigma must be positive")

// IntegerSampler draws integers z with probability proportional to
// exp(-(z-c)^2 / (2*sigma^2)). Configuration is immutable after
// construction; Sample only consumes entropy from the Source.
type IntegerSampler struct {
	sigma *big.Float
	c     *big.Float
	prec  uint
	alg   Algorithm
	src   *Source

	lo, hi     int64      // proposal window, inclusive
	twoSigmaSq *big.Float // 2*sigma^2 at prec

	accept []uint64 // AlgUniformTable: acceptance probability per offset
	cdf    []uint64 // AlgCDT: cumulative distribution per offset
}

// NewIntegerSampler configures a 1-D discrete Gaussian over the integers
// with width sigma and center c (nil means 0). prec is the bit precision of
// all internal real arithmetic; values below 53 are clamped to 53. Returns
// ErrSigmaNotPositive unless sigma > 0.
func NewIntegerSampler(sigma, c *big.Float, prec uint, alg Algorithm, src *Source) (*IntegerSampler, error) {
	if sigma == nil || sigma.Sign() <= 0 {
		return nil, ErrSigmaNotPositive
	}
	if src == nil {
		return nil, errors.New("dgauss: nil randomness source")
	}
	if prec < 53 {
		prec = 53
	}
	d := &IntegerSampler{
		sigma: new(big.Float).SetPrec(prec).Set(sigma),
		c:     new(big.Float).SetPrec(prec),
		prec:  prec,
		alg:   alg,
		src:   src,
	}
	if c != nil {
		d.c.Set(c)
	}
	d.twoSigmaSq = new(big.Float).SetPrec(prec).Mul(d.sigma, d.sigma)
	d.twoSigmaSq.Add(d.twoSigmaSq, d.twoSigmaSq)

	tail := ceilInt64(new(big.Float).SetPrec(prec).Mul(d.sigma, big.NewFloat(TailCut)))
	d.lo = floorInt64(d.c) - tail
	d.hi = ceilInt64(d.c) + tail

	switch alg {
	case AlgUniformOnline:
		// nothing to precompute
	case AlgUniformTable:
		d.accept = make([]uint64, d.hi-d.lo+1)
		for x := d.lo; x <= d.hi; x++ {
			d.accept[x-d.lo] = scale64(d.rho(x))
		}
	case AlgCDT:
		size := int(d.hi - d.lo + 1)
		total := new(big.Float).SetPrec(prec)
		weights := make([]*big.Float, size)
		for x := d.lo; x <= d.hi; x++ {
			w := d.rho(x)
			weights[x-d.lo] = w
			total.Add(total, w)
		}
		d.cdf = make([]uint64, size)
		cum := new(big.Float).SetPrec(prec)
		for i, w := range weights {
			cum.Add(cum, w)
			d.cdf[i] = scale64(new(big.Float).SetPrec(prec).Quo(cum, total))
		}
		// Guard against rounding shaving the top of the table.
		d.cdf[size-1] = ^uint64(0)
	default:
		return nil, fmt.Errorf("dgauss: unknown algorithm %d", alg)
	}
	return d, nil
}

// Sigma returns the configured width.
func (d *IntegerSampler) Sigma() *big.Float { return new(big.Float).Copy(d.sigma) }

// C returns the configured center.
func (d *IntegerSampler) C() *big.Float { return new(big.Float).Copy(d.c) }

// Sample draws one integer. Repeated calls are independent draws from the
// configured distribution.
func (d *IntegerSampler) Sample() int64 {
	switch d.alg {
	case AlgCDT:
		r := d.src.Uint64()
		idx := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > r })
		if idx == len(d.cdf) { // r landed on the saturated top entry
			idx--
		}
		return d.lo + int64(idx)
	case AlgUniformTable:
		for {
			x := d.src.Int64Range(d.lo, d.hi)
			if d.src.Uint64() < d.accept[x-d.lo] {
				return x
			}
		}
	default: // AlgUniformOnline
		for {
			x := d.src.Int64Range(d.lo, d.hi)
			if d.src.Uint64() < scale64(d.rho(x)) {
				return x
			}
		}
	}
}

// rho returns exp(-(x-c)^2 / (2*sigma^2)) at the configured precision.
func (d *IntegerSampler) rho(x int64) *big.Float {
	dx := new(big.Float).SetPrec(d.prec).SetInt64(x)
	dx.Sub(dx, d.c)
	t := new(big.Float).SetPrec(d.prec).Mul(dx, dx)
	t.Quo(t, d.twoSigmaSq)
	return bigfloat.Exp(t.Neg(t))
}

// scale64 maps a probability p in [0, 1] to fixed point p * 2^64,
// saturating at the top.
func scale64(p *big.Float) uint64 {
	u := new(big.Float).SetPrec(p.Prec()).SetMantExp(p, 64)
	v, _ := u.Uint64() // saturates at MaxUint64 when p == 1
	return v
}

func floorInt64(x *big.Float) int64 {
	i, acc := x.Int64()
	if acc == big.Above { // rounded up, i.e. x was negative non-integer
		i--
	}
	return i
}

func ceilInt64(x *big.Float) int64 {
	i, acc := x.Int64()
	if acc == big.Below { // rounded down, i.e. x was positive non-integer
		i++
	}
	return i
}
