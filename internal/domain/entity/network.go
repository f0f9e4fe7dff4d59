package entity

// TargetNetwork holds the configuration for the single chain the client
// operates against. It drives the switch/add-chain negotiation with the wallet
// provider and labels the resolved network in the account snapshot.
type TargetNetwork struct {
	ChainID          uint64 `json:"chainId" yaml:"chainId"`
	ChainIDHex       string `json:"chainIdHex" yaml:"chainIdHex"`
	RPCURL           string `json:"rpcUrl" yaml:"rpcUrl"`
	FriendlyName     string `json:"friendlyName" yaml:"friendlyName"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// NetworkDescriptor is the wallet-reported view of the provider's active
// chain. It is transient: produced per query and consumed immediately by the
// network policy.
type NetworkDescriptor struct {
	ChainID uint64
	RawName string
}
