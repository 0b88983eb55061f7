// Package modmath provides the arbitrary-precision modular arithmetic that the
// public-key schemes are built on.
//
// Contents
//
//   - Square-and-multiply exponentiation (ModPow)
//   - Uniform random integers in a closed range (RandomInt)
//   - Trial division plus Miller-Rabin primality testing (IsPrime,
//     MillerRabinTest)
//   - Small-candidate generator search (FindGenerator, FindValidGenerator)
//   - Domain-parameter validation for ElGamal and DSA groups
//
// # Notes
//
// The generator search only tries the primes below 100. It is a heuristic
// that suits safe primes; it does not factor p-1 and will report
// ErrNoGeneratorFound for moduli outside that family even when a generator
// exists.
package modmath
