package entity

import "errors"

// Error taxonomy for the wallet client. Every failure surfaced to the user
// maps onto exactly one of these sentinels; callers classify with errors.Is.
var (
	// ErrProviderUnavailable means no wallet provider is installed/injected.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrUserRejected means the wallet prompt was declined by the user.
	ErrUserRejected = errors.New("user rejected wallet request")

	// ErrInvalidAddress means the recipient address is non-empty but malformed.
	ErrInvalidAddress = errors.New("invalid recipient address")

	// ErrInvalidAmount means the amount is not parseable as a non-negative
	// decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance means the amount exceeds the connected account's
	// native balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSubmissionFailed covers a non-success receipt status as well as any
	// provider error during send or inclusion wait. The failure modes are
	// deliberately not distinguished further.
	ErrSubmissionFailed = errors.New("transfer submission failed")

	// ErrPersistenceFailed means the history append did not succeed. It is
	// logged only and never invalidates a confirmed on-chain transfer.
	ErrPersistenceFailed = errors.New("history persistence failed")

	// ErrNotConnected means an operation requiring a connected session was
	// invoked while disconnected.
	ErrNotConnected = errors.New("wallet session not connected")

	// ErrSessionBusy means another connect, disconnect or submit negotiation
	// is already in flight for this session.
	ErrSessionBusy = errors.New("wallet session busy")

	// ErrUnknownChain is returned by a provider when asked to switch to a
	// chain it has no definition for. The session reacts by registering the
	// chain and retrying the switch once.
	ErrUnknownChain = errors.New("chain not known to wallet provider")
)
