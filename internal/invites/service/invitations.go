package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/pkg/idx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

const (
	ReasonAlreadyInvited = "This user was already sent an invite."
	ReasonAlreadyMember  = "This person is already a member of this system."
)

// maxTokenAttempts bounds regeneration after a token collision.
const maxTokenAttempts = 3

var errTokenExhausted = errors.New("could not allocate a unique invitation token")

// InvitationStore owns invitation records: creation with duplicate checks,
// token lookup, expiry evaluation and deletion on consumption.
type InvitationStore struct {
	Store    store.Store
	Accounts AccountProvider
	Tokens   TokenGenerator
	Clock    Clock
}

// Create validates that email has neither a pending invitation nor an
// account, then persists a new invitation with a fresh token. Both checks
// always run so a Conflict can carry both reasons.
func (s *InvitationStore) Create(
	ctx context.Context,
	firstName string,
	email string,
	groups domain.GroupSet,
	invitedBy string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	// 1. Check for a pending invitation
	var reasons []string
	_, err := s.Store.Invitations().GetInvitationByEmail(ctx, email)
	switch {
	case err == nil:
		reasons = append(reasons, ReasonAlreadyInvited)
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up invitation by email", slog.Any("error", err))
		return domain.Invitation{}, fmt.Errorf("lookup invitation: %w", err)
	}

	// 2. Check for an existing account
	exists, err := s.Accounts.AccountExists(ctx, email)
	if err != nil {
		log.Error("account provider lookup failed", slog.Any("error", err))
		return domain.Invitation{}, domain.WrapError(domain.KindDependency, err)
	}
	if exists {
		reasons = append(reasons, ReasonAlreadyMember)
	}

	if len(reasons) > 0 {
		log.Info("invitation rejected",
			slog.String("email", email),
			slog.Any("reasons", reasons),
		)
		return domain.Invitation{}, domain.NewError(domain.KindConflict, reasons...)
	}

	// 3. Persist with a fresh token, retrying on collision
	now := nowFrom(s.Clock)
	if groups == nil {
		groups = domain.GroupSet{}
	}
	inv := domain.Invitation{
		FirstName: strings.TrimSpace(firstName),
		Email:     email,
		Groups:    groups,
		InvitedBy: invitedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for range maxTokenAttempts {
		inv.ID = idx.New().String()
		inv.Token = s.Tokens.Generate()

		err = s.Store.Invitations().CreateInvitation(ctx, inv)
		switch {
		case err == nil:
			log.Debug("invitation created",
				slog.String("invitation_id", inv.ID),
				slog.String("email", inv.Email),
				slog.Int("groups", len(inv.Groups)),
			)
			return inv, nil

		case errors.Is(err, store.ErrDuplicateToken):
			log.Warn("invitation token collision, regenerating")
			continue

		case errors.Is(err, store.ErrDuplicateEmail):
			// Lost a race with a concurrent Create for the same email
			return domain.Invitation{}, domain.NewError(domain.KindConflict, ReasonAlreadyInvited)

		default:
			log.Error("failed to create invitation", slog.Any("error", err))
			return domain.Invitation{}, fmt.Errorf("create invitation: %w", err)
		}
	}

	return domain.Invitation{}, errTokenExhausted
}

// FindByToken is an exact-match lookup. An unknown token reports found=false
// rather than an error.
func (s *InvitationStore) FindByToken(ctx context.Context, token string) (domain.Invitation, bool, error) {
	if token == "" {
		return domain.Invitation{}, false, nil
	}

	inv, err := s.Store.Invitations().GetInvitationByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, false, nil
	}
	if err != nil {
		return domain.Invitation{}, false, fmt.Errorf("find invitation by token: %w", err)
	}
	return inv, true, nil
}

// Get returns an invitation by id.
func (s *InvitationStore) Get(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, domain.NewError(domain.KindNotFound, "This invitation could not be found.")
	}
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

// List returns every pending invitation, newest first.
func (s *InvitationStore) List(ctx context.Context) ([]domain.Invitation, error) {
	list, err := s.Store.Invitations().ListInvitations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return list, nil
}

// Delete removes a consumed invitation.
func (s *InvitationStore) Delete(ctx context.Context, id string) error {
	err := s.Store.Invitations().DeleteInvitation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewError(domain.KindNotFound, "This invitation could not be found.")
	}
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

// IsExpired reports whether more than expiryDays whole days have passed
// since the invitation was last modified. The day count is rounded half away
// from zero, so 4d23h counts as 5 days and 5d12h as 6.
func (s *InvitationStore) IsExpired(inv domain.Invitation, expiryDays int) bool {
	return ageInDays(nowFrom(s.Clock), inv) > float64(expiryDays)
}

func ageInDays(now time.Time, inv domain.Invitation) float64 {
	d := now.Sub(inv.UpdatedAt)
	if d < 0 {
		d = -d
	}
	return math.Round(d.Hours() / 24)
}
