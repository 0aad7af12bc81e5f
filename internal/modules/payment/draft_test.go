package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStore_ConsumeOnce(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	draft := &Draft{TxnRef: "ORDER_20250101080000_deadbeef", TotalAmount: 200000}
	require.NoError(t, store.Put(ctx, draft, DefaultDraftTTL))

	got, err := store.Consume(ctx, draft.TxnRef)
	require.NoError(t, err)
	assert.Equal(t, float64(200000), got.TotalAmount)

	_, err = store.Consume(ctx, draft.TxnRef)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDraftStore_UnknownReference(t *testing.T) {
	store := NewMemoryDraftStore()

	_, err := store.Consume(context.Background(), "ORDER_20250101080000_cafebabe")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDraftStore_ExpiredDraft(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return now }

	draft := &Draft{TxnRef: "ORDER_20250101080000_deadbeef"}
	require.NoError(t, store.Put(ctx, draft, DefaultDraftTTL))

	// callback arrives after the TTL has elapsed
	now = now.Add(DefaultDraftTTL + time.Minute)
	_, err := store.Consume(ctx, draft.TxnRef)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	// and the expired entry is gone for good
	now = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	_, err = store.Consume(ctx, draft.TxnRef)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
