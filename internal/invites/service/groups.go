package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/pkg/idx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

// GroupService is the GroupSystem backed by the local groups tables. It also
// serves the group catalogue used when composing invitations.
type GroupService struct {
	Store        store.Store
	Clock        Clock
	Capabilities CapabilityChecker
}

func (s *GroupService) ResolveGroup(ctx context.Context, code string) (string, bool, error) {
	g, err := s.Store.Groups().GetGroupByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return g.ID, true, nil
}

// AddMember is idempotent.
func (s *GroupService) AddMember(ctx context.Context, groupID, accountID string) error {
	return s.Store.Groups().AddGroupMember(ctx, groupID, accountID)
}

// List returns the catalogue. Only actors who may issue invitations see it.
func (s *GroupService) List(ctx context.Context, actor *domain.Actor) ([]domain.Group, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	groups, err := s.Store.Groups().ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Create adds a group to the catalogue. Title defaults to the code.
func (s *GroupService) Create(ctx context.Context, actor *domain.Actor, code, title string) (domain.Group, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorise
	if err := s.authorize(actor); err != nil {
		return domain.Group{}, err
	}

	// 2. Validate
	code = strings.TrimSpace(code)
	title = strings.TrimSpace(title)
	if code == "" {
		return domain.Group{}, domain.NewError(domain.KindValidation, "Group code is required.")
	}
	if strings.ContainsAny(code, " \t\n") {
		return domain.Group{}, domain.NewError(domain.KindValidation, "Group code must not contain whitespace.")
	}
	if title == "" {
		title = code
	}

	// 3. Store
	now := nowFrom(s.Clock)
	g := domain.Group{
		ID:        idx.New().String(),
		Code:      code,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Groups().CreateGroup(ctx, g); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Group{}, domain.NewError(domain.KindConflict, "A group with this code already exists.")
		}
		log.Error("failed to create group", slog.Any("error", err))
		return domain.Group{}, fmt.Errorf("create group: %w", err)
	}

	log.Info("group created",
		slog.String("group_id", g.ID),
		slog.String("code", g.Code),
	)
	return g, nil
}

func (s *GroupService) authorize(actor *domain.Actor) error {
	if s.Capabilities == nil || !s.Capabilities.HasCapability(actor, domain.CapabilityIssueInvitations) {
		return domain.NewError(domain.KindForbidden, "You do not have permission to manage groups.")
	}
	return nil
}
