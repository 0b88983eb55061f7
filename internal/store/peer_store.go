package store

import (
	"path/filepath"
	"sort"
	"sync"

	"hybridchat/internal/domain"
)

const (
	peersFilename = "peers.json.enc"
	peersPurpose  = "peers"
)

// PeerFileStore persists peer keys, including negotiated session keys, so it
// is sealed like the identity.
type PeerFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPeerFileStore returns a PeerFileStore rooted at dir.
func NewPeerFileStore(dir string) *PeerFileStore {
	return &PeerFileStore{dir: dir}
}

// SavePeers replaces the stored peer set. Records are written sorted by
// username so the file is stable across saves.
func (s *PeerFileStore) SavePeers(passphrase string, peers []domain.PeerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]domain.PeerRecord(nil), peers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Username < sorted[j].Username })
	return writeSealed(filepath.Join(s.dir, peersFilename), passphrase, peersPurpose, sorted)
}

// LoadPeers returns the stored peer set; an absent file is an empty set.
func (s *PeerFileStore) LoadPeers(passphrase string) ([]domain.PeerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var peers []domain.PeerRecord
	if _, err := readSealed(filepath.Join(s.dir, peersFilename), passphrase, peersPurpose, &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// Compile-time assertion that PeerFileStore implements domain.PeerStore.
var _ domain.PeerStore = (*PeerFileStore)(nil)
