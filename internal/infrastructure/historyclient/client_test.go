package historyclient

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_client/internal/domain/entity"
	"wallet_client/internal/infrastructure/historyapi"
	"wallet_client/internal/infrastructure/historystore"
	"wallet_client/internal/pkg/logger"
)

func newHistoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := historyapi.NewHistoryHandler(historystore.NewMemoryStore(), logger.NewSlogAdapter())
	server := httptest.NewServer(historyapi.SetupRouter(handler, zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func TestClientAppendAndList(t *testing.T) {
	server := newHistoryServer(t)
	client := NewClient(server.URL, 5*time.Second, zap.NewNop())
	ctx := context.Background()

	record := entity.TransferRecord{
		RecipientAddress: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		AmountNative:     "0.5",
		Timestamp:        "2026-09-01T10:00:00Z",
	}

	stored, err := client.Append(ctx, record)
	require.NoError(t, err)
	require.Equal(t, 1, stored.ID)
	require.Equal(t, record.RecipientAddress, stored.RecipientAddress)
	require.Equal(t, record.AmountNative, stored.AmountNative)

	records, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, stored, records[0])
}

func TestClientListEmpty(t *testing.T) {
	server := newHistoryServer(t)
	client := NewClient(server.URL, 5*time.Second, zap.NewNop())

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestClientAppendServerDown(t *testing.T) {
	server := newHistoryServer(t)
	server.Close()
	client := NewClient(server.URL, time.Second, zap.NewNop())

	_, err := client.Append(context.Background(), entity.TransferRecord{
		RecipientAddress: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		AmountNative:     "0.5",
		Timestamp:        "2026-09-01T10:00:00Z",
	})
	require.Error(t, err)
}
