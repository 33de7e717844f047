package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/pkg/cryptox"
	"github.com/aussiebroadwan/invites/pkg/idx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

const DefaultMinPasswordLength = 8

// AccountService is the AccountProvider backed by the local accounts table.
type AccountService struct {
	Store             store.Store
	Clock             Clock
	MinPasswordLength int
}

func (s *AccountService) AccountExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateAccount applies the password policy, hashes the password and stores
// the account. Policy failures are Validation errors and a taken email is a
// Conflict.
func (s *AccountService) CreateAccount(
	ctx context.Context,
	email string,
	firstName string,
	surname string,
	password string,
) (string, error) {
	hash, err := s.PreparePassword(ctx, password)
	if err != nil {
		return "", err
	}
	return s.CreateAccountWithHash(ctx, email, firstName, surname, hash)
}

// PreparePassword applies the password policy and returns the hash to store.
func (s *AccountService) PreparePassword(ctx context.Context, password string) (string, error) {
	minLen := s.MinPasswordLength
	if minLen <= 0 {
		minLen = DefaultMinPasswordLength
	}
	if utf8.RuneCountInString(password) < minLen {
		return "", domain.NewError(domain.KindValidation,
			fmt.Sprintf("Password must be at least %d characters long.", minLen))
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to hash password", slog.Any("error", err))
		return "", err
	}
	return hash, nil
}

// CreateAccountWithHash stores an account whose password hash came from
// PreparePassword.
func (s *AccountService) CreateAccountWithHash(
	ctx context.Context,
	email string,
	firstName string,
	surname string,
	passwordHash string,
) (string, error) {
	log := slogx.FromContext(ctx)

	now := nowFrom(s.Clock)
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		FirstName:    firstName,
		Surname:      surname,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", domain.NewError(domain.KindConflict, ReasonAlreadyMember)
		}
		log.Error("failed to create account", slog.Any("error", err))
		return "", err
	}

	log.Info("account created",
		slog.String("account_id", account.ID),
		slog.String("email", account.Email),
	)
	return account.ID, nil
}
