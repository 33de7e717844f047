package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID           string
	Email        string
	FirstName    string
	Surname      string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the stored and compared form of an email address. Case is
// folded with Unicode rules so lookups do not depend on the database collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Group struct {
	ID        string
	Code      string // Stable identifier referenced by invitations
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor is the authenticated caller of an operation, taken from the bearer
// token of the request.
type Actor struct {
	ID          string
	DisplayName string
	Scopes      []string
}

// CapabilityIssueInvitations allows creating, listing and re-sending invitations.
const CapabilityIssueInvitations = "issue-invitations"
