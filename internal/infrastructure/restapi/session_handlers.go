package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wallet_client/internal/app/port"
	"wallet_client/internal/app/service"
	"wallet_client/internal/domain/entity"
)

// balanceDisplayPlaces is how many decimal places the UI shows for the
// available balance. The snapshot itself keeps full precision.
const balanceDisplayPlaces = 5

// APISessionResponse is the session endpoint payload: the snapshot when
// connected (all fields present) or nothing at all, never a partial view.
type APISessionResponse struct {
	State          string                  `json:"state"`
	Negotiating    bool                    `json:"negotiating"`
	Account        *entity.AccountSnapshot `json:"account,omitempty"`
	BalanceDisplay string                  `json:"balanceDisplay,omitempty"`
}

// SessionHandler exposes the wallet session over HTTP: the UI renders its
// state and forwards connect/disconnect intents here.
type SessionHandler struct {
	session *service.WalletSession
	logger  port.Logger
}

// NewSessionHandler creates a handler over the given session.
func NewSessionHandler(session *service.WalletSession, logger port.Logger) *SessionHandler {
	return &SessionHandler{session: session, logger: logger}
}

// GetSessionHandler handles GET /session.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	response := APISessionResponse{
		State:       string(h.session.State()),
		Negotiating: h.session.Negotiating(),
	}
	if snapshot, ok := h.session.Snapshot(); ok {
		response.Account = &snapshot
		response.BalanceDisplay = displayBalance(snapshot.BalanceNative)
	}
	c.JSON(http.StatusOK, response)
}

// ConnectHandler handles POST /session/connect.
func (h *SessionHandler) ConnectHandler(c *gin.Context) {
	snapshot, err := h.session.Connect(c.Request.Context())
	if err != nil {
		h.logger.Warn("connect failed", "error", err.Error())
		c.JSON(statusForError(err), gin.H{"error": noticeForError(err)})
		return
	}
	c.JSON(http.StatusOK, APISessionResponse{
		State:          string(h.session.State()),
		Negotiating:    h.session.Negotiating(),
		Account:        &snapshot,
		BalanceDisplay: displayBalance(snapshot.BalanceNative),
	})
}

// DisconnectHandler handles POST /session/disconnect. Local state is cleared
// even when revocation fails; that failure still surfaces as a notice.
func (h *SessionHandler) DisconnectHandler(c *gin.Context) {
	if err := h.session.Disconnect(c.Request.Context()); err != nil {
		if errors.Is(err, entity.ErrSessionBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": noticeForError(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state":  string(h.session.State()),
			"notice": noticeForError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": string(h.session.State())})
}

func displayBalance(balanceNative string) string {
	balance, err := decimal.NewFromString(balanceNative)
	if err != nil {
		return balanceNative
	}
	return balance.StringFixed(balanceDisplayPlaces)
}
