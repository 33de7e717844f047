package sqlite

import (
	"context"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		FirstName:    a.FirstName,
		Surname:      a.Surname,
		PasswordHash: a.PasswordHash,
		CreatedAt:    utc(a.CreatedAt),
		UpdatedAt:    utc(a.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}
