package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lomazzo/birthkeep/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newPerson(t *testing.T, name, birthDate string) engine.Person {
	t.Helper()
	p, err := engine.NewPerson(name, birthDate, "")
	require.NoError(t, err)
	return p
}

func TestAddAndListPeople(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddPerson(ctx, newPerson(t, "Carol", "2001-07-15")))
	require.NoError(t, s.AddPerson(ctx, newPerson(t, "alice", "1990-06-15")))

	people, err := s.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)

	// Ordered by name, case-insensitively.
	assert.Equal(t, "alice", people[0].Name)
	assert.Equal(t, "Carol", people[1].Name)
	assert.Equal(t, "1990-06-15", people[0].BirthDate)
	assert.False(t, people[0].CreatedAt.IsZero())
}

func TestAddPerson_DuplicateNameCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddPerson(ctx, newPerson(t, "Alice", "1990-06-15")))

	err := s.AddPerson(ctx, newPerson(t, "ALICE", "1985-01-01"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGetPerson(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPerson(t, "Alice", "1990-06-15")
	require.NoError(t, s.AddPerson(ctx, p))

	got, err := s.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.BirthDate, got.BirthDate)

	_, err = s.GetPerson(ctx, "missing")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestUpdatePerson(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPerson(t, "Alice", "1990-06-15")
	require.NoError(t, s.AddPerson(ctx, p))

	p.Name = "Alice Silva"
	p.Description = "neighbor"
	require.NoError(t, s.UpdatePerson(ctx, p))

	got, err := s.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Silva", got.Name)
	assert.Equal(t, "neighbor", got.Description)

	ghost := newPerson(t, "Ghost", "1990-06-15")
	assert.ErrorIs(t, s.UpdatePerson(ctx, ghost), ErrPersonNotFound)
}

func TestDeletePerson_RemovesLedgerEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPerson(t, "Alice", "1990-06-15")
	require.NoError(t, s.AddPerson(ctx, p))
	require.NoError(t, s.MarkNotified(ctx, []engine.LedgerEntry{{PersonID: p.ID, DayKey: "2025-06-15"}}))

	require.NoError(t, s.DeletePerson(ctx, p.ID))

	_, err := s.GetPerson(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPersonNotFound)

	ledger, err := s.ListLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	assert.ErrorIs(t, s.DeletePerson(ctx, p.ID), ErrPersonNotFound)
}

func TestLedgerRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen, err := s.WasNotified(ctx, "p1", "2025-06-15")
	require.NoError(t, err)
	assert.False(t, seen)

	entries := []engine.LedgerEntry{
		{PersonID: "p1", DayKey: "2025-06-15"},
		{PersonID: "p2", DayKey: "2025-06-15"},
	}
	require.NoError(t, s.MarkNotified(ctx, entries))

	seen, err = s.WasNotified(ctx, "p1", "2025-06-15")
	require.NoError(t, err)
	assert.True(t, seen)

	// A different day is a fresh slate.
	seen, err = s.WasNotified(ctx, "p1", "2025-06-16")
	require.NoError(t, err)
	assert.False(t, seen)

	// Replaying the same entries must not fail.
	require.NoError(t, s.MarkNotified(ctx, entries))

	ledger, err := s.ListLedger(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger, 2)
}

func TestMarkNotified_Empty(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.MarkNotified(context.Background(), nil))
}

func TestRestore_ReplacesState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := newPerson(t, "Old", "1980-01-01")
	require.NoError(t, s.AddPerson(ctx, old))
	require.NoError(t, s.MarkNotified(ctx, []engine.LedgerEntry{{PersonID: old.ID, DayKey: "2025-01-01"}}))

	incoming := []engine.Person{
		newPerson(t, "Ana", "1990-03-10"),
		newPerson(t, "Bruno", "1985-12-24"),
	}
	entries := []engine.LedgerEntry{{PersonID: incoming[0].ID, DayKey: "2025-03-09"}}

	require.NoError(t, s.Restore(ctx, incoming, entries))

	people, err := s.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Ana", people[0].Name)
	assert.Equal(t, "Bruno", people[1].Name)

	ledger, err := s.ListLedger(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "2025-03-09", ledger[0].DayKey)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	p := newPerson(t, "Alice", "1990-06-15")
	require.NoError(t, s.AddPerson(ctx, p))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	people, err := s2.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Alice", people[0].Name)
}
