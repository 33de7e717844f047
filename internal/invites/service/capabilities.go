package service

import (
	"slices"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
)

// ScopeCapabilities grants capabilities from the scopes carried by an
// actor's access token.
type ScopeCapabilities map[string][]string

// DefaultScopeCapabilities lets "invitations:issue" and "admin:write" tokens
// manage invitations.
func DefaultScopeCapabilities() ScopeCapabilities {
	return ScopeCapabilities{
		"invitations:issue": {domain.CapabilityIssueInvitations},
		"admin:write":       {domain.CapabilityIssueInvitations},
	}
}

func (s ScopeCapabilities) HasCapability(actor *domain.Actor, capability string) bool {
	if actor == nil {
		return false
	}
	for _, scope := range actor.Scopes {
		if slices.Contains(s[scope], capability) {
			return true
		}
	}
	return false
}
