// Package sync transfers the local people list and notification ledger
// between devices through a user-provided relay service. Transfers are
// explicit: a snapshot is pushed under a short one-time code and pulled on
// the other device before the code expires.
package sync

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/engine"
)

// Sentinel errors surfaced to the UI layer.
var (
	ErrSnapshotExpired = errors.New(config.ErrSyncExpired)
	ErrSnapshotFormat  = errors.New(config.ErrSyncFormat)
)

// Snapshot is the full transferable state of one device.
type Snapshot struct {
	Format    int                  `json:"format"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
	People    []engine.Person      `json:"people"`
	Ledger    []engine.LedgerEntry `json:"ledger"`
}

// NewSnapshot wraps the current local state with format and expiry metadata.
func NewSnapshot(people []engine.Person, ledger []engine.LedgerEntry, now time.Time) Snapshot {
	return Snapshot{
		Format:    config.SyncSnapshotFormat,
		CreatedAt: now.UTC(),
		ExpiresAt: now.UTC().Add(config.SyncCodeTTL),
		People:    people,
		Ledger:    ledger,
	}
}

// Encode serializes the snapshot for transport.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSyncEncode, err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a snapshot payload. Unknown formats
// and expired snapshots are rejected before any state is touched.
func DecodeSnapshot(data []byte, now time.Time) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", config.ErrSyncDecode, err)
	}
	if s.Format != config.SyncSnapshotFormat {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotFormat, s.Format)
	}
	if now.After(s.ExpiresAt) {
		return Snapshot{}, ErrSnapshotExpired
	}
	return s, nil
}

// GenerateCode returns a short random code identifying one snapshot at the
// relay. The alphabet avoids lowercase so codes survive being read aloud.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(config.SyncCodeAlphabet)))
	code := make([]byte, config.SyncCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating sync code: %w", err)
		}
		code[i] = config.SyncCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
