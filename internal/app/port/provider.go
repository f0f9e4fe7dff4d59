package port

import (
	"context"
	"math/big"

	"wallet_client/internal/domain/entity"
)

// ProviderEvent identifies an out-of-band notification emitted by the wallet
// provider.
type ProviderEvent string

const (
	EventAccountsChanged ProviderEvent = "accountsChanged"
	EventChainChanged    ProviderEvent = "chainChanged"
	EventDisconnect      ProviderEvent = "disconnect"
)

// WalletProvider is the capability the external wallet exposes to the client.
// It is constructor-injected into the session so a test double can stand in
// for the real provider.
type WalletProvider interface {
	// RequestAccounts asks the provider to authorize account access. This may
	// prompt the user and suspend until they respond. The first returned
	// address is the active account.
	RequestAccounts(ctx context.Context) ([]string, error)

	// GetBalance fetches the native-asset balance of the given account, in the
	// smallest native unit.
	GetBalance(ctx context.Context, address string) (*big.Int, error)

	// GetNetwork reports the provider's active chain.
	GetNetwork(ctx context.Context) (entity.NetworkDescriptor, error)

	// GetSigner returns a signer bound to the given authorized account.
	GetSigner(ctx context.Context, address string) (Signer, error)

	// SwitchChain asks the provider to make the chain with the given hex id
	// active. Returns entity.ErrUnknownChain if the provider has no definition
	// for it.
	SwitchChain(ctx context.Context, chainIDHex string) error

	// AddChain registers a chain definition with the provider.
	AddChain(ctx context.Context, network entity.TargetNetwork) error

	// RevokePermissions asks the provider to drop the prior account
	// authorization.
	RevokePermissions(ctx context.Context) error

	// Subscribe registers a handler for provider-originated events and returns
	// a function that removes the registration.
	Subscribe(event ProviderEvent, handler func()) (unsubscribe func())
}

// Signer is a provider-bound handle capable of authorizing and sending
// transactions for one account.
type Signer interface {
	// SendTransfer signs and broadcasts a native-asset transfer and returns a
	// handle to the pending transaction.
	SendTransfer(ctx context.Context, to string, valueWei *big.Int) (PendingTransfer, error)
}

// PendingTransfer tracks a broadcast transaction until on-chain inclusion.
type PendingTransfer interface {
	// Wait blocks until the transaction is included in a block and returns its
	// receipt. The wait is unbounded: it ends only when the chain answers or
	// ctx is cancelled.
	Wait(ctx context.Context) (entity.Receipt, error)

	// BlockTimestamp returns the unix timestamp of the given block, for
	// deriving the confirmation time. Best effort: an error here is not a
	// submission failure.
	BlockTimestamp(ctx context.Context, blockNumber uint64) (int64, error)
}
