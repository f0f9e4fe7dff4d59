package restapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet_client/internal/domain/entity"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantNotice string
	}{
		{err: entity.ErrProviderUnavailable, wantStatus: http.StatusServiceUnavailable, wantNotice: "Wallet provider not installed"},
		{err: entity.ErrSessionBusy, wantStatus: http.StatusConflict, wantNotice: "Another wallet operation is in progress"},
		{err: entity.ErrNotConnected, wantStatus: http.StatusConflict, wantNotice: "Connect a wallet first"},
		{err: entity.ErrInvalidAddress, wantStatus: http.StatusUnprocessableEntity, wantNotice: "Invalid address"},
		{err: entity.ErrInvalidAmount, wantStatus: http.StatusUnprocessableEntity, wantNotice: "Please enter a valid amount"},
		{err: entity.ErrInsufficientBalance, wantStatus: http.StatusUnprocessableEntity, wantNotice: "Insufficient balance"},
		{err: entity.ErrUserRejected, wantStatus: http.StatusBadRequest, wantNotice: "Request rejected in wallet"},
		{err: entity.ErrSubmissionFailed, wantStatus: http.StatusBadGateway, wantNotice: "Transfer failed"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.wantStatus, statusForError(tt.err))
			require.Equal(t, tt.wantNotice, noticeForError(tt.err))

			// Wrapped errors map the same as their sentinel.
			wrapped := fmt.Errorf("%w: detail", tt.err)
			require.Equal(t, tt.wantStatus, statusForError(wrapped))
			require.Equal(t, tt.wantNotice, noticeForError(wrapped))
		})
	}
}
