package dgauss

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/blake2b"
)

// Source is the randomness stream consumed by the samplers. It wraps a
// lattigo keyed PRNG (a BLAKE2 XOF). A Source is not safe for concurrent
// use; each goroutine must own its own Source or synchronize externally.
type Source struct {
	prng utils.PRNG
	buf  [8]byte
}

// NewSource returns a Source keyed from crypto/rand.
func NewSource() (*Source, error) {
	prng, err := utils.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("dgauss: prng init: %w", err)
	}
	return &Source{prng: prng}, nil
}

// NewSeededSource returns a deterministic Source whose key is derived from
// seed with BLAKE2b. Two sources built from equal seeds produce identical
// streams; intended for tests and reproducible experiments.
func NewSeededSource(seed []byte) (*Source, error) {
	key := blake2b.Sum256(seed)
	prng, err := utils.NewKeyedPRNG(key[:])
	if err != nil {
		return nil, fmt.Errorf("dgauss: keyed prng init: %w", err)
	}
	return &Source{prng: prng}, nil
}

// Uint64 returns the next 64 uniform bits.
func (s *Source) Uint64() uint64 {
	if _, err := io.ReadFull(s.prng, s.buf[:]); err != nil {
		// The XOF never runs dry; a read failure means a broken Source.
		panic(fmt.Errorf("dgauss: prng read: %w", err))
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Float64 returns a uniform float in [0, 1) with 53 random bits.
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) * 0x1p-53
}

// Int64Range returns a uniform integer in the inclusive range [lo, hi],
// rejecting words above the largest multiple of the span to avoid modulo
// bias.
func (s *Source) Int64Range(lo, hi int64) int64 {
	if hi < lo {
		panic(fmt.Errorf("dgauss: empty range [%d, %d]", lo, hi))
	}
	span := uint64(hi-lo) + 1
	threshold := (math.MaxUint64 / span) * span
	for {
		word := s.Uint64()
		if word < threshold {
			return lo + int64(word%span)
		}
	}
}
