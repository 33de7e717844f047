package invitesdk

import (
	"context"
	"net/http"
	"net/url"
)

// IssueInvitation creates an invitation and emails the invitee.
// Requires: invitations:issue scope
//
// If the invitation was stored but the email failed the call still succeeds
// with EmailSent set to false.
func (s *Session) IssueInvitation(ctx context.Context, req IssueInvitationRequest) (*IssueInvitationResponse, error) {
	var out IssueInvitationResponse
	if err := s.do(ctx, http.MethodPost, "/v1/invitations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns every stored invitation, newest first.
// Requires: invitations:issue scope
func (s *Session) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var out ListInvitationsResponse
	if err := s.do(ctx, http.MethodGet, "/v1/invitations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

// GetInvitation returns one invitation by id.
// Requires: invitations:issue scope
func (s *Session) GetInvitation(ctx context.Context, id string) (*Invitation, error) {
	var out Invitation
	if err := s.do(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendInvitation emails a pending invitation again. Expired invitations
// return ErrExpired.
// Requires: invitations:issue scope
func (s *Session) ResendInvitation(ctx context.Context, id string) (*IssueInvitationResponse, error) {
	var out IssueInvitationResponse
	path := "/v1/invitations/" + url.PathEscape(id) + "/send"
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
