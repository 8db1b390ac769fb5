package sync

import (
	"context"
	"time"

	"github.com/lomazzo/birthkeep/internal/engine"
)

// Client drives a push or pull against a relay. The relay never observes a
// merged state: Pull returns the decoded snapshot and the caller explicitly
// replaces local state with it.
type Client struct {
	Remote RemoteStore
}

// NewClient wraps a relay store.
func NewClient(remote RemoteStore) *Client {
	return &Client{Remote: remote}
}

// Push uploads the local state as a fresh snapshot and returns the code the
// other device must enter before the TTL lapses.
func (c *Client) Push(ctx context.Context, people []engine.Person, ledger []engine.LedgerEntry, now time.Time) (string, error) {
	snap := NewSnapshot(people, ledger, now)
	payload, err := snap.Encode()
	if err != nil {
		return "", err
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	if err := c.Remote.Put(ctx, code, payload); err != nil {
		return "", err
	}
	return code, nil
}

// Pull downloads and validates the snapshot stored under code.
func (c *Client) Pull(ctx context.Context, code string, now time.Time) (Snapshot, error) {
	payload, err := c.Remote.Get(ctx, code)
	if err != nil {
		return Snapshot{}, err
	}
	return DecodeSnapshot(payload, now)
}
