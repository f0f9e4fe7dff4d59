package service

import (
	"strings"

	"wallet_client/internal/domain/entity"
)

// NetworkPolicy resolves a human-readable network name from a wallet-reported
// network descriptor, for the single chain the client targets.
type NetworkPolicy struct {
	target entity.TargetNetwork
}

// NewNetworkPolicy creates a policy for the given target network.
func NewNetworkPolicy(target entity.TargetNetwork) *NetworkPolicy {
	return &NetworkPolicy{target: target}
}

// Resolve returns the display name for the descriptor. When the wallet
// reports a placeholder name for the configured target chain, the configured
// friendly name is used; every other report passes through unchanged.
func (p *NetworkPolicy) Resolve(descriptor entity.NetworkDescriptor) string {
	if isPlaceholderName(descriptor.RawName) && descriptor.ChainID == p.target.ChainID {
		return p.target.FriendlyName
	}
	return descriptor.RawName
}

// Wallet libraries report "unknown" for chains absent from their registry; an
// empty name means the provider had nothing to say at all.
func isPlaceholderName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unknown":
		return true
	}
	return false
}
