package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrDuplicateEmail and ErrDuplicateToken identify which unique constraint
	// rejected a write. Both match ErrAlreadyExists.
	ErrDuplicateEmail = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrDuplicateToken = fmt.Errorf("%w: token", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories so that a Tx can hand out the same repos bound
// to one transaction.
type Store interface {
	Invitations() Invitations
	Accounts() Accounts
	Groups() Groups

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invitations interface {
	// CreateInvitation inserts a new invitation. Returns ErrDuplicateEmail when
	// a pending invitation already exists for the email and ErrDuplicateToken
	// on a token collision.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByToken is an exact-match lookup used by the accept flow.
	GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error)

	// GetInvitationByEmail matches case-insensitively.
	GetInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error)

	// ListInvitations returns all pending invitations, newest first.
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)

	// DeleteInvitation removes a consumed invitation. Returns ErrNotFound if
	// no row was deleted.
	DeleteInvitation(ctx context.Context, id string) error
}

type Accounts interface {
	// CreateAccount inserts a new account. Returns ErrDuplicateEmail if the
	// email is already registered.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByEmail matches case-insensitively.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)
}

type Groups interface {
	// CreateGroup inserts a group. Returns ErrAlreadyExists on a duplicate code.
	CreateGroup(ctx context.Context, g domain.Group) error

	GetGroupByCode(ctx context.Context, code string) (domain.Group, error)

	// ListGroups returns all groups ordered by title.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	// AddGroupMember is idempotent.
	AddGroupMember(ctx context.Context, groupID, accountID string) error

	// ListGroupCodesForAccount returns the codes of every group the account belongs to.
	ListGroupCodesForAccount(ctx context.Context, accountID string) ([]string, error)
}
