package service

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
)

// fakeProvider is an in-memory wallet provider double with scriptable
// failures and an event bus.
type fakeProvider struct {
	mu sync.Mutex

	accounts    []string
	accountsErr error
	balance     *big.Int
	balanceErr  error
	descriptor  entity.NetworkDescriptor
	networkErr  error
	networkHook func()
	signer      port.Signer
	signerErr   error
	revokeErr   error

	knownChains map[string]bool

	signerCalls int
	switchCalls int
	addCalls    int

	subs map[port.ProviderEvent][]func()
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		accounts:    []string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
		balance:     big.NewInt(0).Mul(big.NewInt(1), big.NewInt(1e18)),
		descriptor:  entity.NetworkDescriptor{ChainID: 534351, RawName: "unknown"},
		knownChains: map[string]bool{"0x8274f": true},
		subs:        make(map[port.ProviderEvent][]func()),
	}
}

func (f *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	return f.accounts, nil
}

func (f *fakeProvider) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeProvider) GetNetwork(ctx context.Context) (entity.NetworkDescriptor, error) {
	if f.networkHook != nil {
		f.networkHook()
	}
	if f.networkErr != nil {
		return entity.NetworkDescriptor{}, f.networkErr
	}
	return f.descriptor, nil
}

func (f *fakeProvider) GetSigner(ctx context.Context, address string) (port.Signer, error) {
	f.mu.Lock()
	f.signerCalls++
	f.mu.Unlock()
	if f.signerErr != nil {
		return nil, f.signerErr
	}
	return f.signer, nil
}

func (f *fakeProvider) SwitchChain(ctx context.Context, chainIDHex string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switchCalls++
	if !f.knownChains[strings.ToLower(chainIDHex)] {
		return entity.ErrUnknownChain
	}
	return nil
}

func (f *fakeProvider) AddChain(ctx context.Context, network entity.TargetNetwork) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	f.knownChains[strings.ToLower(network.ChainIDHex)] = true
	return nil
}

func (f *fakeProvider) RevokePermissions(ctx context.Context) error {
	return f.revokeErr
}

func (f *fakeProvider) Subscribe(event port.ProviderEvent, handler func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[event] = append(f.subs[event], handler)
	index := len(f.subs[event]) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.subs[event][index] = nil
	}
}

func (f *fakeProvider) emit(event port.ProviderEvent) {
	f.mu.Lock()
	handlers := append([]func(){}, f.subs[event]...)
	f.mu.Unlock()
	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

// fakeSigner hands out a scripted pending transfer.
type fakeSigner struct {
	mu        sync.Mutex
	pending   port.PendingTransfer
	sendErr   error
	sentTo    string
	sentValue *big.Int
}

func (f *fakeSigner) SendTransfer(ctx context.Context, to string, valueWei *big.Int) (port.PendingTransfer, error) {
	f.mu.Lock()
	f.sentTo = to
	f.sentValue = new(big.Int).Set(valueWei)
	f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.pending, nil
}

// fakePending resolves immediately with a scripted receipt.
type fakePending struct {
	receipt      entity.Receipt
	waitErr      error
	blockTime    int64
	blockTimeErr error
}

func (f *fakePending) Wait(ctx context.Context) (entity.Receipt, error) {
	if f.waitErr != nil {
		return entity.Receipt{}, f.waitErr
	}
	return f.receipt, nil
}

func (f *fakePending) BlockTimestamp(ctx context.Context, blockNumber uint64) (int64, error) {
	if f.blockTimeErr != nil {
		return 0, f.blockTimeErr
	}
	return f.blockTime, nil
}

// fakeHistory records appends and signals each one on a channel so tests can
// wait for the asynchronous best-effort append.
type fakeHistory struct {
	mu        sync.Mutex
	records   []entity.TransferRecord
	appendErr error
	appended  chan entity.TransferRecord
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{appended: make(chan entity.TransferRecord, 8)}
}

func (f *fakeHistory) Append(ctx context.Context, record entity.TransferRecord) (entity.TransferRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		f.appended <- record
		return entity.TransferRecord{}, f.appendErr
	}
	record.ID = len(f.records) + 1
	f.records = append(f.records, record)
	f.appended <- record
	return record, nil
}

func (f *fakeHistory) List(ctx context.Context) ([]entity.TransferRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.TransferRecord{}, f.records...), nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// nopLogger satisfies port.Logger for tests.
type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func testTarget() entity.TargetNetwork {
	return entity.TargetNetwork{
		ChainID:          534351,
		ChainIDHex:       "0x8274f",
		RPCURL:           "https://sepolia-rpc.scroll.io/",
		FriendlyName:     "scrollSepolia",
		BlockExplorerURL: "https://sepolia.scrollscan.com",
	}
}
