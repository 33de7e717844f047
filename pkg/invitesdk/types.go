package invitesdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a machine-readable code (e.g. "invalid_request", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable summary
	ErrorDescription string `json:"error_description"`

	// Reasons lists every individual problem, e.g. both "already invited"
	// and "already a member" for a conflicting email.
	Reasons []string `json:"reasons,omitempty"`
}

// ============================================================================
// Invitations
// ============================================================================

// IssueInvitationRequest is the body of POST /v1/invitations.
type IssueInvitationRequest struct {
	FirstName string   `json:"first_name"`
	Email     string   `json:"email"`
	Groups    []string `json:"groups"`
}

// Invitation is a pending or expired invitation as seen by an administrator.
type Invitation struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	Groups    []string  `json:"groups"`
	InvitedBy string    `json:"invited_by,omitempty"`
	State     string    `json:"state"` // "pending" or "expired"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueInvitationResponse is returned when an invitation is created or
// re-sent. EmailSent is false when the invitation was stored but the email
// could not be delivered; the accept URL can then be shared by other means.
type IssueInvitationResponse struct {
	Invitation
	Token     string `json:"token,omitempty"`
	AcceptURL string `json:"accept_url,omitempty"`
	EmailSent bool   `json:"email_sent"`
}

// ListInvitationsResponse is the body of GET /v1/invitations.
type ListInvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// ============================================================================
// Accept
// ============================================================================

// InspectResponse describes the invitation behind a token.
type InspectResponse struct {
	State     string    `json:"state"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptRequest is the body of POST /v1/accept/{token}.
type AcceptRequest struct {
	FirstName       string `json:"first_name"`
	Surname         string `json:"surname"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// AcceptResponse carries the new account and where to sign in.
type AcceptResponse struct {
	AccountID string `json:"account_id"`
	LoginURL  string `json:"login_url,omitempty"`
}

// ============================================================================
// Groups
// ============================================================================

type Group struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

// CreateGroupRequest is the body of POST /v1/groups. Title defaults to Code.
type CreateGroupRequest struct {
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Keys     string `json:"keys"`
}
