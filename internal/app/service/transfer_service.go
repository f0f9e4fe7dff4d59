package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
	"wallet_client/internal/pkg/metrics"
	"wallet_client/internal/pkg/utils"
)

const historyAppendTimeout = 10 * time.Second

// TransferResult is what a successful submission hands back to the caller:
// the canonical record (id still unset, assigned by the history store) plus
// the on-chain references the UI shows in its confirmation dialog.
type TransferResult struct {
	Record      entity.TransferRecord `json:"record"`
	TxHash      string                `json:"txHash"`
	ExplorerURL string                `json:"explorerUrl,omitempty"`
}

// TransferService validates and submits native-asset transfers through the
// connected wallet session and reconciles confirmations into the history log.
type TransferService struct {
	session *WalletSession
	history port.HistoryStore
	target  entity.TargetNetwork
	logger  port.Logger
}

// NewTransferService creates a transfer service bound to the given session
// and history store.
func NewTransferService(session *WalletSession, history port.HistoryStore, target entity.TargetNetwork, logger port.Logger) *TransferService {
	return &TransferService{
		session: session,
		history: history,
		target:  target,
		logger:  logger,
	}
}

// Validate runs the advisory pre-submission checks against the given balance.
// It is meant to be re-evaluated on every keystroke: an empty field yields no
// error (the affordance is simply not submittable yet), a malformed non-empty
// address yields ErrInvalidAddress, a non-numeric amount ErrInvalidAmount and
// an amount above the balance ErrInsufficientBalance.
func (s *TransferService) Validate(request entity.TransferRequest, balanceNative string) error {
	if request.RecipientAddress != "" && !common.IsHexAddress(request.RecipientAddress) {
		return entity.ErrInvalidAddress
	}
	if request.AmountNative == "" {
		return nil
	}
	return s.validateAmount(request.AmountNative, balanceNative)
}

func (s *TransferService) validateAmount(amountNative, balanceNative string) error {
	amount, err := utils.ParseAmount(amountNative)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
	}
	balance, err := utils.ParseAmount(balanceNative)
	if err != nil {
		return fmt.Errorf("%w: unreadable balance: %v", entity.ErrInvalidAmount, err)
	}
	if amount.GreaterThan(balance) {
		return entity.ErrInsufficientBalance
	}
	return nil
}

// Submit validates the request, submits the transfer through the provider and
// waits for on-chain inclusion. Only a receipt with success status yields a
// record; everything else, including user rejection mid-flight, is a uniform
// submission failure with no history entry.
//
// The inclusion wait is the long suspension point: it can take minutes and is
// bounded only by ctx.
func (s *TransferService) Submit(ctx context.Context, request entity.TransferRequest) (TransferResult, error) {
	snapshot, connected := s.session.Snapshot()
	if !connected || s.session.State() != StateConnected {
		return TransferResult{}, entity.ErrNotConnected
	}

	if err := s.validateStrict(request, snapshot.BalanceNative); err != nil {
		metrics.TransfersSubmitted.WithLabelValues("rejected").Inc()
		return TransferResult{}, err
	}

	if !s.session.beginNegotiation() {
		return TransferResult{}, entity.ErrSessionBusy
	}
	defer s.session.endNegotiation()

	result, err := s.submit(ctx, request, snapshot)
	if err != nil {
		metrics.TransfersSubmitted.WithLabelValues("failure").Inc()
		return TransferResult{}, err
	}
	metrics.TransfersSubmitted.WithLabelValues("success").Inc()
	return result, nil
}

// validateStrict is the submit-time variant of Validate: empty fields are no
// longer "not yet filled in" but hard errors.
func (s *TransferService) validateStrict(request entity.TransferRequest, balanceNative string) error {
	if !common.IsHexAddress(request.RecipientAddress) {
		return entity.ErrInvalidAddress
	}
	if request.AmountNative == "" {
		return entity.ErrInvalidAmount
	}
	return s.validateAmount(request.AmountNative, balanceNative)
}

func (s *TransferService) submit(ctx context.Context, request entity.TransferRequest, snapshot entity.AccountSnapshot) (TransferResult, error) {
	amount, err := utils.ParseAmount(request.AmountNative)
	if err != nil {
		return TransferResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
	}
	valueWei, err := utils.ToWei(amount)
	if err != nil {
		return TransferResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
	}

	signer, err := s.session.provider.GetSigner(ctx, snapshot.Address)
	if err != nil {
		return TransferResult{}, fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	pending, err := signer.SendTransfer(ctx, request.RecipientAddress, valueWei)
	if err != nil {
		return TransferResult{}, fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	waitStart := time.Now()
	receipt, err := pending.Wait(ctx)
	metrics.InclusionWaitSeconds.Observe(time.Since(waitStart).Seconds())
	if err != nil {
		return TransferResult{}, fmt.Errorf("%w: inclusion wait: %v", entity.ErrSubmissionFailed, err)
	}
	if !receipt.Succeeded() {
		return TransferResult{}, fmt.Errorf("%w: receipt status %d", entity.ErrSubmissionFailed, receipt.Status)
	}

	record := entity.TransferRecord{
		RecipientAddress: request.RecipientAddress,
		AmountNative:     request.AmountNative,
		Timestamp:        s.confirmationTime(ctx, pending, receipt),
	}

	s.logger.Info("transfer confirmed",
		"txHash", receipt.TxHash,
		"recipient", utils.TruncateMiddle(record.RecipientAddress, 5),
		"amount", record.AmountNative)

	// Best effort: the on-chain transfer is the source of truth, a failed
	// append is logged and never rolled back or re-surfaced.
	go s.appendHistory(record)

	return TransferResult{
		Record:      record,
		TxHash:      receipt.TxHash,
		ExplorerURL: s.explorerURL(receipt.TxHash),
	}, nil
}

// confirmationTime derives the record timestamp from the including block,
// falling back to wall-clock time when block metadata is unavailable.
func (s *TransferService) confirmationTime(ctx context.Context, pending port.PendingTransfer, receipt entity.Receipt) string {
	unix, err := pending.BlockTimestamp(ctx, receipt.BlockNumber)
	if err != nil {
		s.logger.Warn("block timestamp unavailable, using wall clock", "block", receipt.BlockNumber, "error", err.Error())
		return time.Now().UTC().Format(time.RFC3339)
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func (s *TransferService) appendHistory(record entity.TransferRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), historyAppendTimeout)
	defer cancel()

	if _, err := s.history.Append(ctx, record); err != nil {
		metrics.HistoryAppendFailures.Inc()
		s.logger.Error("history append failed",
			"error", fmt.Sprintf("%v: %v", entity.ErrPersistenceFailed, err),
			"recipient", utils.TruncateMiddle(record.RecipientAddress, 5))
	}
}

func (s *TransferService) explorerURL(txHash string) string {
	if s.target.BlockExplorerURL == "" || txHash == "" {
		return ""
	}
	return strings.TrimRight(s.target.BlockExplorerURL, "/") + "/tx/" + txHash
}
