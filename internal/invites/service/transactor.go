package service

import (
	"context"

	"github.com/aussiebroadwan/invites/internal/invites/store"
)

// StoreTransactor provisions accounts, memberships and the invitation delete
// inside a single store transaction.
type StoreTransactor struct {
	Store             store.Store
	Clock             Clock
	MinPasswordLength int
}

func (t *StoreTransactor) InTx(ctx context.Context, fn func(p Provisioning) error) error {
	return t.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(Provisioning{
			Accounts: &AccountService{
				Store:             tx,
				Clock:             t.Clock,
				MinPasswordLength: t.MinPasswordLength,
			},
			Groups:      &GroupService{Store: tx, Clock: t.Clock},
			Invitations: &InvitationStore{Store: tx, Clock: t.Clock},
		})
	})
}
