package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite/gen"
)

type groupsRepo struct {
	q *gen.Queries
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	err := r.q.CreateGroup(ctx, gen.CreateGroupParams{
		ID:        g.ID,
		Code:      g.Code,
		Title:     g.Title,
		CreatedAt: utc(g.CreatedAt),
		UpdatedAt: utc(g.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *groupsRepo) GetGroupByCode(ctx context.Context, code string) (domain.Group, error) {
	row, err := r.q.GetGroupByCode(ctx, code)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return mapGroup(row), nil
}

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.q.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGroup(row))
	}
	return out, nil
}

func (r *groupsRepo) AddGroupMember(ctx context.Context, groupID, accountID string) error {
	return r.q.AddGroupMember(ctx, gen.AddGroupMemberParams{
		GroupID:   groupID,
		AccountID: accountID,
		CreatedAt: utc(time.Now()),
	})
}

func (r *groupsRepo) ListGroupCodesForAccount(ctx context.Context, accountID string) ([]string, error) {
	codes, err := r.q.ListGroupCodesForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}
