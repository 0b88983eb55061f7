package modmath

import (
	"fmt"
	"math/big"
)

// FindGenerator returns the first prime g below 100 for which neither g^2 nor
// g^((p-1)/2) is 1 mod p. For a safe prime p such a g generates the full
// multiplicative group.
func FindGenerator(p *big.Int) (*big.Int, error) {
	if p.Cmp(big.NewInt(3)) <= 0 {
		return nil, fmt.Errorf("%w: modulus %s too small", ErrNoGeneratorFound, p)
	}
	half := new(big.Int).Sub(p, one)
	half.Rsh(half, 1)

	for _, c := range smallPrimes {
		g := big.NewInt(c)
		if g.Cmp(p) >= 0 {
			break
		}
		if ModPow(g, two, p).Cmp(one) == 0 {
			continue
		}
		if ModPow(g, half, p).Cmp(one) == 0 {
			continue
		}
		return g, nil
	}
	return nil, ErrNoGeneratorFound
}

// FindValidGenerator checks that p is prime and returns a generator from
// FindGenerator that also passes ValidateParameters.
func FindValidGenerator(p *big.Int, iterations int) (*big.Int, error) {
	if !IsPrime(p, iterations) {
		return nil, fmt.Errorf("%w: modulus is not prime", ErrInvalidParameter)
	}
	g, err := FindGenerator(p)
	if err != nil {
		return nil, err
	}
	if err := checkGenerator(p, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ValidateParameters rejects a non-prime p or a g outside (1, p-1).
func ValidateParameters(p, g *big.Int, iterations int) error {
	if p == nil || g == nil {
		return fmt.Errorf("%w: missing p or g", ErrInvalidParameter)
	}
	if !IsPrime(p, iterations) {
		return fmt.Errorf("%w: p is not prime", ErrInvalidParameter)
	}
	return checkGenerator(p, g)
}

// ValidateDSAParameters rejects a non-prime p or q, a q that does not divide
// p-1, a g outside (1, p-1), or a g whose order is not q.
func ValidateDSAParameters(p, q, g *big.Int, iterations int) error {
	if p == nil || q == nil || g == nil {
		return fmt.Errorf("%w: missing p, q or g", ErrInvalidParameter)
	}
	if !IsPrime(p, iterations) {
		return fmt.Errorf("%w: p is not prime", ErrInvalidParameter)
	}
	if !IsPrime(q, iterations) {
		return fmt.Errorf("%w: q is not prime", ErrInvalidParameter)
	}
	pMinusOne := new(big.Int).Sub(p, one)
	if new(big.Int).Mod(pMinusOne, q).Sign() != 0 {
		return fmt.Errorf("%w: q does not divide p-1", ErrInvalidParameter)
	}
	if err := checkGenerator(p, g); err != nil {
		return err
	}
	if ModPow(g, q, p).Cmp(one) != 0 {
		return fmt.Errorf("%w: g does not generate the order-q subgroup", ErrInvalidParameter)
	}
	return nil
}

func checkGenerator(p, g *big.Int) error {
	pMinusOne := new(big.Int).Sub(p, one)
	if g.Cmp(one) <= 0 || g.Cmp(pMinusOne) >= 0 {
		return fmt.Errorf("%w: g outside (1, p-1)", ErrInvalidParameter)
	}
	return nil
}
