package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abgdnv/storefront/internal/store"
)

// Keys used in the local KV. ThemeKey belongs to the presentation
// layer; the engine only ever touches SnapshotKey.
const (
	ThemeKey    = "theme"
	SnapshotKey = "state"
)

// Snapshot is the persisted unit: cart lines, wishlist ids, and the
// full order history. The catalog is static configuration and is not
// part of it.
type Snapshot struct {
	Cart     []store.CartLine `json:"cart"`
	Wishlist []string         `json:"wishlist"`
	Orders   []store.Order    `json:"orders"`
}

// Gateway reads and writes the state snapshot.
type Gateway interface {
	// Load returns the last persisted snapshot. An absent or corrupt
	// snapshot yields an empty one; Load never fails outward.
	Load() Snapshot

	// Save persists the snapshot, replacing the previous one.
	Save(snap Snapshot) error
}

// SnapshotStore is a Gateway on top of a local KV.
type SnapshotStore struct {
	kv     KV
	logger *slog.Logger
}

// NewSnapshotStore creates a Gateway writing under SnapshotKey in kv.
func NewSnapshotStore(kv KV, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{
		kv:     kv,
		logger: logger.With("component", "persistence"),
	}
}

// Load reads and decodes the snapshot. Absence is normal on first run;
// read or decode failures are logged and masked behind empty defaults
// so a damaged state file can never take the storefront down.
func (s *SnapshotStore) Load() Snapshot {
	data, ok, err := s.kv.Get(SnapshotKey)
	if err != nil {
		s.logger.Warn("failed to read snapshot, starting empty", "error", err)
		return Snapshot{}
	}
	if !ok {
		return Snapshot{}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("corrupt snapshot, starting empty", "error", err)
		return Snapshot{}
	}
	return snap
}

// Save encodes and writes the snapshot.
func (s *SnapshotStore) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.kv.Set(SnapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
