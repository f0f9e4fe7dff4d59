package historystore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet_client/internal/domain/entity"
)

func TestMemoryStoreAssignsSequentialIds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		stored, err := store.Append(ctx, entity.TransferRecord{
			RecipientAddress: fmt.Sprintf("0x%040d", i),
			AmountNative:     "0.1",
			Timestamp:        "2026-09-01T10:00:00Z",
		})
		require.NoError(t, err)
		require.Equal(t, i, stored.ID)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		require.Equal(t, i+1, record.ID)
		require.Equal(t, fmt.Sprintf("0x%040d", i+1), record.RecipientAddress)
	}
}

func TestMemoryStoreIgnoresClientSuppliedId(t *testing.T) {
	store := NewMemoryStore()

	stored, err := store.Append(context.Background(), entity.TransferRecord{
		ID:               99,
		RecipientAddress: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		AmountNative:     "1",
		Timestamp:        "2026-09-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, 1, stored.ID)
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Append(ctx, entity.TransferRecord{RecipientAddress: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", AmountNative: "1"})
	require.NoError(t, err)

	first, err := store.List(ctx)
	require.NoError(t, err)
	first[0].AmountNative = "mutated"

	second, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "1", second[0].AmountNative)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const appends = 50
	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(ctx, entity.TransferRecord{AmountNative: "0.1"})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, appends)

	seen := make(map[int]bool, appends)
	for _, record := range records {
		require.False(t, seen[record.ID], "duplicate id %d", record.ID)
		seen[record.ID] = true
		require.GreaterOrEqual(t, record.ID, 1)
		require.LessOrEqual(t, record.ID, appends)
	}
}
