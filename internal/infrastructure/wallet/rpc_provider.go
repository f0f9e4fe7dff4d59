package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
	"wallet_client/internal/infrastructure/configloader"
)

// wellKnownChains mirrors the name registry a browser wallet library carries:
// chains it recognizes get a name, everything else is reported as "unknown"
// and left to the network policy to resolve.
var wellKnownChains = map[uint64]string{
	1:        "mainnet",
	5:        "goerli",
	10:       "optimism",
	137:      "polygon",
	42161:    "arbitrum",
	11155111: "sepolia",
}

const unknownChainName = "unknown"

// RPCProvider is a headless implementation of the wallet provider capability,
// backed by JSON-RPC nodes and a locally held key. It stands in for the
// browser-injected wallet: same negotiation surface, no user prompts.
type RPCProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address

	rpcCallTimeout time.Duration
	receiptPolls   *rate.Limiter
	balanceCache   *cache.Cache
	logger         *zap.Logger

	mu         sync.Mutex
	chains     map[string]entity.TargetNetwork
	clients    map[string]*ethclient.Client
	activeHex  string
	authorized bool

	subsMu  sync.Mutex
	subs    map[port.ProviderEvent]map[int]func()
	nextSub int
}

// NewProviderFromConfig builds the wallet provider for the configured
// account. An empty private key is the headless analogue of "no wallet
// installed": the returned provider is nil and the session answers
// entity.ErrProviderUnavailable on connect.
func NewProviderFromConfig(cfg *configloader.Config, logger *zap.Logger) (port.WalletProvider, error) {
	if strings.TrimSpace(cfg.Account.PrivateKey) == "" {
		logger.Warn("no account private key configured, wallet provider unavailable")
		return nil, nil
	}
	provider, err := NewRPCProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// NewRPCProvider creates a provider over the configured known networks. The
// chains listed in knownNetworks form the provider's registry; switching to
// any other chain returns entity.ErrUnknownChain until it is added.
func NewRPCProvider(cfg *configloader.Config, logger *zap.Logger) (*RPCProvider, error) {
	keyHex := strings.TrimPrefix(strings.TrimPrefix(cfg.Account.PrivateKey, "0x"), "0X")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account private key: %w", err)
	}

	ttl := time.Duration(cfg.Performance.BalanceCacheTTLSeconds) * time.Second
	p := &RPCProvider{
		key:            key,
		address:        crypto.PubkeyToAddress(key.PublicKey),
		rpcCallTimeout: time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second,
		receiptPolls:   rate.NewLimiter(rate.Limit(cfg.Performance.ReceiptPollsPerSecond), 1),
		balanceCache:   cache.New(ttl, 2*ttl),
		logger:         logger.Named("RPCProvider"),
		chains:         make(map[string]entity.TargetNetwork),
		clients:        make(map[string]*ethclient.Client),
		subs:           make(map[port.ProviderEvent]map[int]func()),
	}

	for _, network := range cfg.KnownNetworks {
		p.chains[normalizeChainHex(network.ChainIDHex)] = network
	}
	if len(cfg.KnownNetworks) > 0 {
		p.activeHex = normalizeChainHex(cfg.KnownNetworks[0].ChainIDHex)
	}

	return p, nil
}

// RequestAccounts authorizes account access. The headless provider has no
// user to prompt; authorization always succeeds for the configured account.
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	p.authorized = true
	p.mu.Unlock()
	return []string{p.address.Hex()}, nil
}

// GetBalance fetches the native balance in wei. Results are cached for a few
// seconds: the advisory validation re-reads the balance on every keystroke.
func (p *RPCProvider) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	cacheKey := p.activeChainHex() + "_" + strings.ToLower(address)
	if cached, found := p.balanceCache.Get(cacheKey); found {
		return new(big.Int).Set(cached.(*big.Int)), nil
	}

	client, err := p.activeClient(ctx)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.rpcCallTimeout)
	defer cancel()

	balance, err := client.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance failed for %s: %w", address, err)
	}

	p.balanceCache.Set(cacheKey, new(big.Int).Set(balance), cache.DefaultExpiration)
	return balance, nil
}

// GetNetwork reports the active chain. The raw name comes from the provider's
// well-known registry; chains outside it are reported as "unknown", same as a
// browser wallet library would.
func (p *RPCProvider) GetNetwork(ctx context.Context) (entity.NetworkDescriptor, error) {
	network, ok := p.activeChain()
	if !ok {
		return entity.NetworkDescriptor{}, fmt.Errorf("no active chain configured")
	}

	rawName, known := wellKnownChains[network.ChainID]
	if !known {
		rawName = unknownChainName
	}
	return entity.NetworkDescriptor{ChainID: network.ChainID, RawName: rawName}, nil
}

// GetSigner returns a signer bound to the authorized account.
func (p *RPCProvider) GetSigner(ctx context.Context, address string) (port.Signer, error) {
	p.mu.Lock()
	authorized := p.authorized
	p.mu.Unlock()
	if !authorized {
		return nil, fmt.Errorf("account access not authorized")
	}
	if !strings.EqualFold(address, p.address.Hex()) {
		return nil, fmt.Errorf("no signer for account %s", address)
	}

	network, ok := p.activeChain()
	if !ok {
		return nil, fmt.Errorf("no active chain configured")
	}
	client, err := p.activeClient(ctx)
	if err != nil {
		return nil, err
	}

	return &rpcSigner{
		client:         client,
		key:            p.key,
		from:           p.address,
		chainID:        new(big.Int).SetUint64(network.ChainID),
		rpcCallTimeout: p.rpcCallTimeout,
		receiptPolls:   p.receiptPolls,
		logger:         p.logger,
	}, nil
}

// SwitchChain makes the chain with the given hex id active. A chain absent
// from the registry yields entity.ErrUnknownChain so the session can fall
// back to AddChain and retry.
func (p *RPCProvider) SwitchChain(ctx context.Context, chainIDHex string) error {
	hex := normalizeChainHex(chainIDHex)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.chains[hex]; !ok {
		return fmt.Errorf("%w: %s", entity.ErrUnknownChain, chainIDHex)
	}
	p.activeHex = hex
	return nil
}

// AddChain registers a chain definition with the provider.
func (p *RPCProvider) AddChain(ctx context.Context, network entity.TargetNetwork) error {
	if network.ChainIDHex == "" || network.RPCURL == "" {
		return fmt.Errorf("chain definition requires chainIdHex and rpcUrl")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.chains[normalizeChainHex(network.ChainIDHex)] = network
	p.logger.Info("chain registered",
		zap.String("chainIdHex", network.ChainIDHex),
		zap.String("name", network.FriendlyName))
	return nil
}

// RevokePermissions drops the account authorization.
func (p *RPCProvider) RevokePermissions(ctx context.Context) error {
	p.mu.Lock()
	p.authorized = false
	p.mu.Unlock()
	return nil
}

// Subscribe registers a handler for a provider event. The headless provider
// has no out-of-band event source of its own; Emit feeds the bus, which test
// doubles and future chain watchers use.
func (p *RPCProvider) Subscribe(event port.ProviderEvent, handler func()) func() {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	if p.subs[event] == nil {
		p.subs[event] = make(map[int]func())
	}
	id := p.nextSub
	p.nextSub++
	p.subs[event][id] = handler

	return func() {
		p.subsMu.Lock()
		defer p.subsMu.Unlock()
		delete(p.subs[event], id)
	}
}

// Emit invokes every handler registered for the event.
func (p *RPCProvider) Emit(event port.ProviderEvent) {
	p.subsMu.Lock()
	handlers := make([]func(), 0, len(p.subs[event]))
	for _, handler := range p.subs[event] {
		handlers = append(handlers, handler)
	}
	p.subsMu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

func (p *RPCProvider) activeChain() (entity.TargetNetwork, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	network, ok := p.chains[p.activeHex]
	return network, ok
}

func (p *RPCProvider) activeChainHex() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeHex
}

// activeClient returns the cached dialed client for the active chain,
// dialing on first use.
func (p *RPCProvider) activeClient(ctx context.Context) (*ethclient.Client, error) {
	p.mu.Lock()
	hex := p.activeHex
	network, ok := p.chains[hex]
	if !ok {
		p.mu.Unlock()
		return nil, fmt.Errorf("no active chain configured")
	}
	if client, exists := p.clients[hex]; exists {
		p.mu.Unlock()
		return client, nil
	}
	p.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, p.rpcCallTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", network.RPCURL, err)
	}

	p.mu.Lock()
	p.clients[hex] = client
	p.mu.Unlock()
	p.logger.Info("connected to RPC node",
		zap.String("chainIdHex", hex),
		zap.String("rpcUrl", network.RPCURL))
	return client, nil
}

func normalizeChainHex(chainIDHex string) string {
	return strings.ToLower(strings.TrimSpace(chainIDHex))
}
