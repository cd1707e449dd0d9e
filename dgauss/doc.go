// Package dgauss implements discrete Gaussian samplers over the integers
// and over arbitrary lattices in pure Go. Lattice sampling follows the
// GPV/Klein algorithm: randomized rounding along the Gram-Schmidt
// orthogonalization of the supplied basis, so that for sigma large enough
// relative to the basis, lattice vectors x are returned with probability
// proportional to exp(-|x-c|^2/(2*sigma^2)).
//
// All real arithmetic runs at a configurable bit precision on big.Float,
// and lattice-membership decisions are exact over the rationals. Randomness
// comes from a keyed BLAKE2 XOF so experiments are reproducible from a
// seed.
package dgauss
