package service

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
	"wallet_client/internal/pkg/metrics"
	"wallet_client/internal/pkg/utils"
)

// SessionState identifies where the wallet session is in its lifecycle.
type SessionState string

const (
	StateDisconnected  SessionState = "disconnected"
	StateConnecting    SessionState = "connecting"
	StateConnected     SessionState = "connected"
	StateDisconnecting SessionState = "disconnecting"
)

// WalletSession owns the connection state towards the external wallet
// provider. It negotiates account access and chain switching, publishes the
// account snapshot atomically, and reacts to provider-originated events by
// invalidating its state.
type WalletSession struct {
	provider port.WalletProvider
	policy   *NetworkPolicy
	target   entity.TargetNetwork
	logger   port.Logger

	// negotiation admits one connect, disconnect or submit at a time. It is
	// advisory, mirroring the single user-facing event loop: a busy session
	// answers ErrSessionBusy instead of queueing.
	negotiation *semaphore.Weighted
	negotiating atomic.Bool

	mu       sync.RWMutex
	state    SessionState
	snapshot *entity.AccountSnapshot
	// epoch advances on every invalidation. A connect records it before
	// negotiating and publishes only if it is unchanged, so a snapshot built
	// before a provider event can never overwrite the invalidated state.
	epoch uint64

	unsubscribes []func()
	onInvalidate func()
}

// NewWalletSession creates a session for the given provider and target
// network. The provider may be nil (no wallet installed); Connect then fails
// with entity.ErrProviderUnavailable.
func NewWalletSession(provider port.WalletProvider, policy *NetworkPolicy, target entity.TargetNetwork, logger port.Logger) *WalletSession {
	s := &WalletSession{
		provider:    provider,
		policy:      policy,
		target:      target,
		logger:      logger,
		negotiation: semaphore.NewWeighted(1),
		state:       StateDisconnected,
	}
	s.subscribeProviderEvents()
	return s
}

// SetInvalidateHook installs a callback fired after a provider event has
// invalidated the session. The hook typically re-runs the connection
// bootstrap; it replaces the full page reload a browser host would do.
func (s *WalletSession) SetInvalidateHook(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = hook
}

// Connect negotiates account access with the wallet provider and publishes
// the resulting account snapshot. On any failure the whole sequence aborts:
// no partial snapshot is ever published and the session returns to
// disconnected.
func (s *WalletSession) Connect(ctx context.Context) (entity.AccountSnapshot, error) {
	if s.provider == nil {
		metrics.ConnectAttempts.WithLabelValues("failure").Inc()
		return entity.AccountSnapshot{}, entity.ErrProviderUnavailable
	}
	if !s.beginNegotiation() {
		return entity.AccountSnapshot{}, entity.ErrSessionBusy
	}
	defer s.endNegotiation()

	s.mu.Lock()
	startEpoch := s.epoch
	s.state = StateConnecting
	s.mu.Unlock()

	snapshot, err := s.negotiate(ctx)
	if err != nil {
		s.setState(StateDisconnected)
		metrics.ConnectAttempts.WithLabelValues("failure").Inc()
		return entity.AccountSnapshot{}, err
	}

	s.mu.Lock()
	if s.epoch != startEpoch {
		s.state = StateDisconnected
		s.mu.Unlock()
		metrics.ConnectAttempts.WithLabelValues("failure").Inc()
		s.logger.Warn("session invalidated during connection, discarding snapshot")
		return entity.AccountSnapshot{}, errors.New("session invalidated during connection")
	}
	s.state = StateConnected
	s.snapshot = &snapshot
	s.mu.Unlock()

	metrics.ConnectAttempts.WithLabelValues("success").Inc()
	s.logger.Info("wallet connected",
		"address", utils.TruncateMiddle(snapshot.Address, 5),
		"network", snapshot.NetworkName,
		"balance", snapshot.BalanceNative)
	return snapshot, nil
}

// negotiate runs the ordered connection sequence: account authorization,
// chain switch (with one add-and-retry fallback), balance and network query,
// display-name resolution.
func (s *WalletSession) negotiate(ctx context.Context) (entity.AccountSnapshot, error) {
	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		return entity.AccountSnapshot{}, errors.Wrap(err, "account authorization failed")
	}
	if len(accounts) == 0 {
		return entity.AccountSnapshot{}, errors.New("provider returned no accounts")
	}
	address := accounts[0]

	if err := s.ensureTargetChain(ctx); err != nil {
		return entity.AccountSnapshot{}, err
	}

	balance, err := s.provider.GetBalance(ctx, address)
	if err != nil {
		return entity.AccountSnapshot{}, errors.Wrap(err, "balance query failed")
	}
	descriptor, err := s.provider.GetNetwork(ctx)
	if err != nil {
		return entity.AccountSnapshot{}, errors.Wrap(err, "network query failed")
	}

	return entity.AccountSnapshot{
		Address:       address,
		BalanceNative: utils.FormatWei(balance),
		ChainID:       strconv.FormatUint(descriptor.ChainID, 10),
		NetworkName:   s.policy.Resolve(descriptor),
	}, nil
}

// ensureTargetChain switches the provider to the configured chain. If the
// chain is unknown to the provider, its definition is registered and the
// switch retried exactly once.
func (s *WalletSession) ensureTargetChain(ctx context.Context) error {
	err := s.provider.SwitchChain(ctx, s.target.ChainIDHex)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrUnknownChain) {
		return errors.Wrap(err, "chain switch failed")
	}

	s.logger.Info("target chain unknown to provider, registering it",
		"chainIdHex", s.target.ChainIDHex, "network", s.target.FriendlyName)
	if err := s.provider.AddChain(ctx, s.target); err != nil {
		return errors.Wrap(err, "chain registration failed")
	}
	if err := s.provider.SwitchChain(ctx, s.target.ChainIDHex); err != nil {
		return errors.Wrap(err, "chain switch failed after registration")
	}
	return nil
}

// Disconnect asks the provider to revoke the prior authorization and clears
// the local snapshot. Local state always wins: the snapshot is cleared even
// when revocation errors, and that error is still surfaced to the caller.
func (s *WalletSession) Disconnect(ctx context.Context) error {
	if !s.beginNegotiation() {
		return entity.ErrSessionBusy
	}
	defer s.endNegotiation()

	s.setState(StateDisconnecting)

	var revokeErr error
	if s.provider != nil {
		revokeErr = s.provider.RevokePermissions(ctx)
	}

	s.clearLocked()

	if revokeErr != nil {
		s.logger.Warn("permission revocation failed, local session cleared anyway", "error", revokeErr.Error())
		return errors.Wrap(revokeErr, "permission revocation failed")
	}
	s.logger.Info("wallet disconnected")
	return nil
}

// Snapshot returns the current account snapshot, if connected. The returned
// value is a copy; the session's own snapshot is only ever replaced wholesale.
func (s *WalletSession) Snapshot() (entity.AccountSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return entity.AccountSnapshot{}, false
	}
	return *s.snapshot, true
}

// State returns the current lifecycle state.
func (s *WalletSession) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Negotiating reports whether a connect, disconnect or submit is in flight.
// UI surfaces use it to disable affordances.
func (s *WalletSession) Negotiating() bool {
	return s.negotiating.Load()
}

// Close tears the session down, releasing all provider event subscriptions.
func (s *WalletSession) Close() {
	s.mu.Lock()
	unsubs := s.unsubscribes
	s.unsubscribes = nil
	s.mu.Unlock()
	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
}

func (s *WalletSession) beginNegotiation() bool {
	if !s.negotiation.TryAcquire(1) {
		return false
	}
	s.negotiating.Store(true)
	return true
}

func (s *WalletSession) endNegotiation() {
	s.negotiating.Store(false)
	s.negotiation.Release(1)
}

func (s *WalletSession) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *WalletSession) clearLocked() {
	s.mu.Lock()
	s.state = StateDisconnected
	s.snapshot = nil
	s.mu.Unlock()
}

// subscribeProviderEvents registers for out-of-band provider notifications.
// The subscriptions are scoped to the session lifetime and released in Close.
func (s *WalletSession) subscribeProviderEvents() {
	if s.provider == nil {
		return
	}
	for _, event := range []port.ProviderEvent{
		port.EventAccountsChanged,
		port.EventChainChanged,
		port.EventDisconnect,
	} {
		event := event
		unsubscribe := s.provider.Subscribe(event, func() {
			s.invalidate(event)
		})
		s.unsubscribes = append(s.unsubscribes, unsubscribe)
	}
}

// invalidate discards all local session state in response to a provider
// event. The wallet's own state is authoritative; rather than reasoning about
// partial consistency, the session starts over and lets the invalidate hook
// re-run the bootstrap.
func (s *WalletSession) invalidate(event port.ProviderEvent) {
	s.logger.Warn("provider event invalidated session", "event", string(event))

	s.mu.Lock()
	s.epoch++
	s.state = StateDisconnected
	s.snapshot = nil
	hook := s.onInvalidate
	s.mu.Unlock()

	if hook != nil {
		go hook()
	}
}
