package entity

// AccountSnapshot describes the connected wallet account at one point in time.
// It is owned by the wallet session and replaced wholesale on every state
// change: either all fields are set (connected) or the snapshot is absent
// (disconnected). Partial snapshots are never published.
type AccountSnapshot struct {
	Address       string `json:"address"`
	BalanceNative string `json:"balanceNative"`
	ChainID       string `json:"chainId"`
	NetworkName   string `json:"networkName"`
}
