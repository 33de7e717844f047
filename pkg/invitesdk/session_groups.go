package invitesdk

import (
	"context"
	"net/http"
)

// ListGroups returns the groups an invitation can reference.
// Requires: invitations:issue scope
func (s *Session) ListGroups(ctx context.Context) ([]Group, error) {
	var out ListGroupsResponse
	if err := s.do(ctx, http.MethodGet, "/v1/groups", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// CreateGroup adds a group.
// Requires: invitations:issue scope
func (s *Session) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	var out Group
	if err := s.do(ctx, http.MethodPost, "/v1/groups", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
