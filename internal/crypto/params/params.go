// Package params holds the fixed domain parameters shared by every process
// in a deployment. They are not negotiated and cannot be configured.
//
// ElGamal works in the RFC 3526 2048-bit MODP group. Its generator is not
// stored: it is recovered at start-up with modmath.FindValidGenerator, which
// settles on 11 for this safe prime. DSA uses a fixed group with a 2048-bit
// modulus and a 256-bit prime subgroup order.
//
// Both sets are validated once per process; a failure is returned from every
// subsequent call.
package params

import (
	"fmt"
	"math/big"
	"sync"

	"hybridchat/internal/crypto/dsa"
	"hybridchat/internal/crypto/elgamal"
	"hybridchat/internal/crypto/modmath"
)

const modp2048Hex = "" +
	"ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74" +
	"020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f1437" +
	"4fe1356d6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7ed" +
	"ee386bfb5a899fa5ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf05" +
	"98da48361c55d39a69163fa8fd24cf5f83655d23dca3ad961c62f356208552bb" +
	"9ed529077096966d670c354e4abc9804f1746c08ca18217c32905e462e36ce3b" +
	"e39e772c180e86039b2783a2ec07a28fb5c55df06f4c52c9de2bcbf695581718" +
	"3995497cea956ae515d2261898fa051015728e5a8aacaa68ffffffffffffffff"

const (
	dsaPHex = "" +
		"877c6bc65536a29d82e5acf849df95dbdb33db55c439b240f528fe37a2692b72" +
		"7a684065800ef2647a0704220369760d2cdc106ce53bf01bc7cf568a75b1f4ec" +
		"d16a152c49a3a5f83578d5652d5e478a5c6c64e39fe1f680205f0fd2b63b70f8" +
		"7c6fbd4404167449468bf716c22fd426b925c2caab9e30ca30be29fa561a1a5c" +
		"a959acfff9ebb88b08d211828d2541deaf866dd7d23a32e1713e9a98b283d81a" +
		"ac48041d38f05ed4e0c7cb355729f627ebfb4560f236351715e95d8d45ba1394" +
		"a1b05785562287a6e408b63f9642076424848d00259d884296a6421ffe782dc7" +
		"2e29586e61de8a9c9f392cdf688ba42fa9cceb2161dc6103190291983a9c525d"

	dsaQHex = "8c4076f246eb0e73de827227598b3f751f03b401a4ea91c76241d2ac10d343a5"

	dsaGHex = "" +
		"1197ce0169f376ad1c721fa357c5c0a386327b367a8154b66c5a3e63b5842a10" +
		"1ac3a08aefd77f0b4a8354d4129f5dd683e5ad28548818ce696c87838fe819e5" +
		"9932404901f33102f6ddac26d0015f5b3df295a1b9190d17ced89c77a147c510" +
		"7a4a6324a3da1c5d69d9d41f67738cbb8187147223849e5fdcc5ff2a6170d05d" +
		"1d9791ae32168b297485f75310c9db0f5b88ec2c057c1f90d04fe3065bd7c627" +
		"07987795aad7ea52aec0581d3cda2d25c9ea6f2fc1f90e5f4526df809f0fa3f6" +
		"2015bc13ed43a7937b69be3e69258a6e191761d88415ad47ba3424ea4ef3b3fd" +
		"8b01f07cbce92151657f812b0a3bb7b7a785d1c3c5fd5f8add3877a7cb301f97"
)

var (
	elgOnce   sync.Once
	elgParams elgamal.Parameters
	elgErr    error

	dsaOnce   sync.Once
	dsaParams dsa.Parameters
	dsaErr    error
)

// ElGamal returns the validated deployment ElGamal group.
func ElGamal() (elgamal.Parameters, error) {
	elgOnce.Do(func() {
		p := mustHex(modp2048Hex)
		g, err := modmath.FindValidGenerator(p, modmath.DefaultIterations)
		if err != nil {
			elgErr = fmt.Errorf("elgamal domain parameters: %w", err)
			return
		}
		elgParams = elgamal.Parameters{P: p, G: g}
	})
	return copyElGamal(elgParams), elgErr
}

// DSA returns the validated deployment DSA group.
func DSA() (dsa.Parameters, error) {
	dsaOnce.Do(func() {
		p := dsa.Parameters{P: mustHex(dsaPHex), Q: mustHex(dsaQHex), G: mustHex(dsaGHex)}
		if err := p.Validate(modmath.DefaultIterations); err != nil {
			dsaErr = err
			return
		}
		dsaParams = p
	})
	return copyDSA(dsaParams), dsaErr
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("params: bad hex constant")
	}
	return v
}

func copyElGamal(p elgamal.Parameters) elgamal.Parameters {
	if p.P == nil {
		return p
	}
	return elgamal.Parameters{P: new(big.Int).Set(p.P), G: new(big.Int).Set(p.G)}
}

func copyDSA(p dsa.Parameters) dsa.Parameters {
	if p.P == nil {
		return p
	}
	return dsa.Parameters{P: new(big.Int).Set(p.P), Q: new(big.Int).Set(p.Q), G: new(big.Int).Set(p.G)}
}
