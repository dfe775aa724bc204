package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Get_AbsentIsIdle(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.Idle{}, state)
}

func TestStore_SetGet_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	states := []domain.State{
		domain.Idle{},
		domain.InBacklog{Top: 5, Skip: 10},
		domain.NewIssueDesc{
			Summary: "crash",
			Project: domain.ProjectRef{ID: "0-1", Name: "Demo"},
			Stream:  domain.FieldValue{FieldID: "f-1", FieldName: "Stream", Value: "Backend"},
			Type:    domain.FieldValue{FieldID: "f-2", FieldName: "Type", Value: "Bug"},
			Desc:    "steps",
		},
	}

	for _, want := range states {
		require.NoError(t, store.Set(ctx, 7, want))

		got, err := store.Get(ctx, 7)
		require.NoError(t, err, "%T", want)
		assert.Equal(t, want, got)
	}
}

func TestStore_Set_Overwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 7, domain.InBacklog{Top: 5}))
	require.NoError(t, store.Set(ctx, 7, domain.NewIssue{}))

	state, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.NewIssue{}, state)
}

func TestStore_Get_CorruptRecordIsIdle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO sessions (key, state) VALUES (?, ?)",
		sessionKey(7), "not a state record",
	)
	require.NoError(t, err)

	state, err := store.Get(ctx, 7)
	require.NoError(t, err, "corruption is absorbed, not propagated")
	assert.Equal(t, domain.Idle{}, state)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, 7, domain.InBacklog{Top: 5, Skip: 15}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	state, err := reopened.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.InBacklog{Top: 5, Skip: 15}, state)
}
