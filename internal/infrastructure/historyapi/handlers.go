package historyapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
)

// appendRequest is the POST /history body. The id is never client-supplied.
type appendRequest struct {
	RecipientAddress string `json:"recipientAddress" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
	Timestamp        string `json:"timestamp" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HistoryHandler serves the transfer history endpoints.
type HistoryHandler struct {
	store  port.HistoryStore
	logger port.Logger
}

// NewHistoryHandler creates a handler over the given store.
func NewHistoryHandler(store port.HistoryStore, logger port.Logger) *HistoryHandler {
	return &HistoryHandler{store: store, logger: logger}
}

// ListHandler handles GET /history: all records as a JSON array in append
// order.
func (h *HistoryHandler) ListHandler(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list history", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list history"})
		return
	}
	if records == nil {
		records = []entity.TransferRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// AppendHandler handles POST /history: stores the record and answers 201 with
// the assigned id.
func (h *HistoryHandler) AppendHandler(c *gin.Context) {
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	stored, err := h.store.Append(c.Request.Context(), entity.TransferRecord{
		RecipientAddress: req.RecipientAddress,
		AmountNative:     req.Amount,
		Timestamp:        req.Timestamp,
	})
	if err != nil {
		h.logger.Error("failed to append history record", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to append history record"})
		return
	}

	h.logger.Info("history record appended", "id", stored.ID, "amount", stored.AmountNative)
	c.JSON(http.StatusCreated, stored)
}
