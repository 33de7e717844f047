package sqlite

import (
	"context"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:         inv.ID,
		FirstName:  inv.FirstName,
		Email:      inv.Email,
		Token:      inv.Token,
		GroupCodes: inv.Groups.Encode(),
		InvitedBy:  mapStringNull(inv.InvitedBy),
		CreatedAt:  utc(inv.CreatedAt),
		UpdatedAt:  utc(inv.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) GetInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByEmail(ctx, email)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	rows, err := r.q.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		inv, err := mapInvitation(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	n, err := r.q.DeleteInvitation(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
