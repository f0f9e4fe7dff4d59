package historyapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_client/internal/domain/entity"
	"wallet_client/internal/infrastructure/historystore"
	"wallet_client/internal/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(historystore.NewMemoryStore(), logger.NewSlogAdapter())
	return SetupRouter(handler, zap.NewNop())
}

func TestHistoryAPIEmptyList(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestHistoryAPIAppendThenList(t *testing.T) {
	router := newTestRouter(t)

	body := `{"recipientAddress":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","amount":"0.5","timestamp":"2026-09-01T10:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/history", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var stored entity.TransferRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.Equal(t, 1, stored.ID)
	require.Equal(t, "0.5", stored.AmountNative)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []entity.TransferRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	require.Equal(t, stored, records[0])
}

func TestHistoryAPIAppendValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing amount", body: `{"recipientAddress":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","timestamp":"2026-09-01T10:00:00Z"}`},
		{name: "missing recipient", body: `{"amount":"0.5","timestamp":"2026-09-01T10:00:00Z"}`},
		{name: "missing timestamp", body: `{"recipientAddress":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","amount":"0.5"}`},
		{name: "not json", body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/history", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHistoryAPIAppendOrderPreserved(t *testing.T) {
	router := newTestRouter(t)

	for _, amount := range []string{"0.1", "0.2", "0.3"} {
		body := `{"recipientAddress":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","amount":"` + amount + `","timestamp":"2026-09-01T10:00:00Z"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/history", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	router.ServeHTTP(w, req)

	var records []entity.TransferRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 3)
	for i, want := range []string{"0.1", "0.2", "0.3"} {
		require.Equal(t, i+1, records[i].ID)
		require.Equal(t, want, records[i].AmountNative)
	}
}
