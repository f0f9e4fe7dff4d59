package restapi

import (
	"errors"
	"net/http"

	"wallet_client/internal/domain/entity"
)

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, entity.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, entity.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidAddress),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrUserRejected):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrSubmissionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// noticeForError renders the user-visible notice for an error. Every failure
// surfaces as a notice at its point of origin; nothing propagates as an
// unhandled fault.
func noticeForError(err error) string {
	switch {
	case errors.Is(err, entity.ErrProviderUnavailable):
		return "Wallet provider not installed"
	case errors.Is(err, entity.ErrSessionBusy):
		return "Another wallet operation is in progress"
	case errors.Is(err, entity.ErrNotConnected):
		return "Connect a wallet first"
	case errors.Is(err, entity.ErrInvalidAddress):
		return "Invalid address"
	case errors.Is(err, entity.ErrInvalidAmount):
		return "Please enter a valid amount"
	case errors.Is(err, entity.ErrInsufficientBalance):
		return "Insufficient balance"
	case errors.Is(err, entity.ErrUserRejected):
		return "Request rejected in wallet"
	case errors.Is(err, entity.ErrSubmissionFailed):
		return "Transfer failed"
	default:
		return err.Error()
	}
}
