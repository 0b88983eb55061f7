package identity

import (
	"fmt"
	"time"
	"unicode"

	"hybridchat/internal/crypto"
	"hybridchat/internal/domain"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/protocol/wire"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages the long-term key pairs using a backing store.
//
// The identity contains:
//   - an ElGamal key pair, used by peers to wrap session keys for us.
//   - a DSA key pair, used to sign key exchanges and message ciphertexts.
type Service struct {
	store domain.IdentityStore
	opts  []hybrid.Option
}

// New returns an identity service backed by the given store. opts are
// passed to every hybrid.System it builds.
func New(s domain.IdentityStore, opts ...hybrid.Option) *Service {
	return &Service{store: s, opts: opts}
}

// GenerateIdentity creates fresh key pairs, saves the private exponents
// sealed with the passphrase, and returns the system plus its fingerprint.
func (s *Service) GenerateIdentity(passphrase string) (*hybrid.System, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return nil, "", ErrWeakPassphrase
	}

	sys, err := hybrid.New(s.opts...)
	if err != nil {
		return nil, "", err
	}
	id := domain.Identity{
		ElGamalPrivate: crypto.FormatInt(sys.ElGamalPrivateKey()),
		DSAPrivate:     crypto.FormatInt(sys.DSAPrivateKey()),
		CreatedUTC:     time.Now().Unix(),
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		sys.Close()
		return nil, "", err
	}
	return sys, domain.Fingerprint(sys.Fingerprint()), nil
}

// LoadSystem unlocks the stored identity and rebuilds the hybrid system.
func (s *Service) LoadSystem(passphrase string) (*hybrid.System, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return nil, err
	}
	elgX, err := crypto.ParseInt(id.ElGamalPrivate)
	if err != nil {
		return nil, fmt.Errorf("stored elgamal key: %w", err)
	}
	defer crypto.WipeInt(elgX)
	dsaX, err := crypto.ParseInt(id.DSAPrivate)
	if err != nil {
		return nil, fmt.Errorf("stored dsa key: %w", err)
	}
	defer crypto.WipeInt(dsaX)

	return hybrid.FromKeys(elgX, dsaX, s.opts...)
}

// FingerprintIdentity returns the fingerprint of the stored public keys.
func (s *Service) FingerprintIdentity(passphrase string) (domain.Fingerprint, error) {
	sys, err := s.LoadSystem(passphrase)
	if err != nil {
		return "", err
	}
	defer sys.Close()
	return domain.Fingerprint(sys.Fingerprint()), nil
}

// PublicKeys returns what username should publish to a relay.
func (s *Service) PublicKeys(passphrase string, username domain.Username) (domain.PublicKeys, error) {
	sys, err := s.LoadSystem(passphrase)
	if err != nil {
		return domain.PublicKeys{}, err
	}
	defer sys.Close()
	return wire.EncodePublicKeys(username, sys), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
