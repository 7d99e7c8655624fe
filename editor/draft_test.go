package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStoreRoundTrip(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	// Empty slot reads back as nil, not an error
	draft, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, draft)

	doc := NewCampaignDocument(1, "Draft Campaign")
	before := time.Now()
	require.NoError(t, store.Save(ctx, 1, doc))

	draft, err = store.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Draft Campaign", draft.Name)
	require.Len(t, draft.Steps, 1)
	assert.Equal(t, "Welcome Screen", draft.Steps[0].Name)
	assert.False(t, draft.LastModified.Before(before), "save must stamp the draft")
}

func TestMemoryDraftStoreOverwritesSlot(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, NewCampaignDocument(1, "First")))
	require.NoError(t, store.Save(ctx, 1, NewCampaignDocument(1, "Second")))

	draft, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Second", draft.Name)
}

func TestMemoryDraftStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, NewCampaignDocument(1, "Mine")))

	draft, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestMemoryDraftStoreClear(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, NewCampaignDocument(1, "Gone Soon")))
	require.NoError(t, store.Clear(ctx, 1))

	draft, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, draft)

	// Clearing an already empty slot is fine
	require.NoError(t, store.Clear(ctx, 1))
}

func TestMemoryDraftStoreReturnsCopies(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, NewCampaignDocument(1, "Original")))

	first, err := store.Get(ctx, 1)
	require.NoError(t, err)
	first.Name = "Mutated"

	second, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Original", second.Name, "callers must not be able to alias the slot")
}
