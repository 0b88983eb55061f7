package store

import (
	"path/filepath"
	"sync"

	"hybridchat/internal/domain"
)

const (
	idFilename = "identity.json.enc"
	idPurpose  = "identity"
)

// IdentityFileStore persists the local private exponents to disk.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir}
}

// SaveIdentity seals id under passphrase, replacing any existing identity.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeSealed(filepath.Join(s.dir, idFilename), passphrase, idPurpose, id)
}

// LoadIdentity opens the sealed identity. It returns domain.ErrNoIdentity
// when none has been saved.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id domain.Identity
	ok, err := readSealed(filepath.Join(s.dir, idFilename), passphrase, idPurpose, &id)
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		return domain.Identity{}, domain.ErrNoIdentity
	}
	return id, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
