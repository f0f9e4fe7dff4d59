package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_client/internal/app/port"
	"wallet_client/internal/app/service"
	"wallet_client/internal/domain/entity"
)

// APIValidationResponse mirrors the per-field advisory errors the form shows
// under its inputs. Empty strings mean the field is acceptable.
type APIValidationResponse struct {
	AddressError string `json:"addressError"`
	AmountError  string `json:"amountError"`
}

// TransferHandler exposes transfer submission and the per-keystroke advisory
// validation.
type TransferHandler struct {
	transfers *service.TransferService
	session   *service.WalletSession
	logger    port.Logger
}

// NewTransferHandler creates a handler over the given services.
func NewTransferHandler(transfers *service.TransferService, session *service.WalletSession, logger port.Logger) *TransferHandler {
	return &TransferHandler{transfers: transfers, session: session, logger: logger}
}

// SubmitHandler handles POST /transfers. The request body is the transfer
// request; the response carries the confirmation record and on-chain
// references. This call suspends until on-chain inclusion and can be
// long-lived.
func (h *TransferHandler) SubmitHandler(c *gin.Context) {
	var request entity.TransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.transfers.Submit(c.Request.Context(), request)
	if err != nil {
		h.logger.Warn("transfer submission failed", "error", err.Error())
		c.JSON(statusForError(err), gin.H{"error": noticeForError(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ValidateHandler handles POST /transfers/validate: the advisory checks the
// form re-runs on every keystroke. Always 200; the body carries the per-field
// notices.
func (h *TransferHandler) ValidateHandler(c *gin.Context) {
	var request entity.TransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var balanceNative string
	if snapshot, ok := h.session.Snapshot(); ok {
		balanceNative = snapshot.BalanceNative
	} else {
		balanceNative = "0"
	}

	var response APIValidationResponse
	switch err := h.transfers.Validate(request, balanceNative); {
	case err == nil:
	case errors.Is(err, entity.ErrInvalidAddress):
		response.AddressError = "Invalid address"
	case errors.Is(err, entity.ErrInsufficientBalance):
		response.AmountError = "Insufficient balance"
	case errors.Is(err, entity.ErrInvalidAmount):
		response.AmountError = "Please enter a valid amount"
	default:
		response.AmountError = noticeForError(err)
	}
	c.JSON(http.StatusOK, response)
}
