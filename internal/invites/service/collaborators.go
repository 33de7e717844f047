package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
)

// AccountProvider owns user accounts. CreateAccount returns a *domain.Error
// of kind Validation or Conflict when the input is rejected by policy, any
// other error is treated as an infrastructure failure.
type AccountProvider interface {
	AccountExists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, email, firstName, surname, password string) (string, error)
}

// PasswordPreparer is implemented by account providers that can apply the
// password policy and hash ahead of the account write.
type PasswordPreparer interface {
	PreparePassword(ctx context.Context, password string) (string, error)
}

// HashedAccountCreator stores an account whose password hash came from a
// PasswordPreparer.
type HashedAccountCreator interface {
	CreateAccountWithHash(ctx context.Context, email, firstName, surname, passwordHash string) (string, error)
}

// GroupSystem resolves group codes and manages membership.
type GroupSystem interface {
	ResolveGroup(ctx context.Context, code string) (groupID string, found bool, err error)
	AddMember(ctx context.Context, groupID, accountID string) error
}

// Message is a templated email. Template names a template pair known to the
// mailer and Data is passed to it unchanged.
type Message struct {
	To       string
	Subject  string
	Template string
	Data     any
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// CapabilityChecker decides whether an actor holds a capability.
type CapabilityChecker interface {
	HasCapability(actor *domain.Actor, capability string) bool
}

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func nowFrom(c Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}

// InvitationRemover consumes an invitation.
type InvitationRemover interface {
	Delete(ctx context.Context, id string) error
}

// Provisioning is the set of collaborators used while accepting an
// invitation. Inside a Transactor they are all bound to one transaction.
type Provisioning struct {
	Accounts    AccountProvider
	Groups      GroupSystem
	Invitations InvitationRemover
}

// Transactor runs fn atomically: if fn returns an error nothing it did is kept.
type Transactor interface {
	InTx(ctx context.Context, fn func(p Provisioning) error) error
}

// Recorder receives lifecycle events for metrics.
type Recorder interface {
	InvitationIssued()
	InvitationAccepted()
	InvitationMailFailed()
	GroupsSkipped(n int)
}

type nopRecorder struct{}

func (nopRecorder) InvitationIssued()     {}
func (nopRecorder) InvitationAccepted()   {}
func (nopRecorder) InvitationMailFailed() {}
func (nopRecorder) GroupsSkipped(int)     {}
