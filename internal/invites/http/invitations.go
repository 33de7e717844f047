package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/pkg/httpx"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

type InvitationsHandler struct {
	Lifecycle *service.InvitationLifecycle
}

// HandleIssue godoc
//
//	@Summary		Issue Invitation
//	@Description	Create an invitation for an email address and send it to the invitee. Requires the issue-invitations capability.
//	@Description	If the invitation is stored but the email cannot be sent the response is still 201 with email_sent=false.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.IssueInvitationRequest	true	"Invitee"
//	@Success		201		{object}	invitesdk.IssueInvitationResponse	"Created invitation with token and accept_url"
//	@Failure		400		{object}	invitesdk.ErrorResponse				"Validation failed"
//	@Failure		401		{object}	invitesdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403		{object}	invitesdk.ErrorResponse				"Not allowed to issue invitations"
//	@Failure		409		{object}	invitesdk.ErrorResponse				"Already invited or already a member"
//	@Failure		500		{object}	invitesdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.IssueInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body.")
		return
	}

	inv, err := h.Lifecycle.Issue(ctx, actorFromRequest(r), req.FirstName, req.Email, domain.NewGroupSet(req.Groups...))
	partial := service.IsPartialIssue(inv, err)
	if err != nil && !partial {
		writeError(w, r, err, "issue invitation")
		return
	}
	if partial {
		log.Warn("invitation issued without email", slog.String("invitation_id", inv.ID))
	}

	httpx.WriteJSON(w, http.StatusCreated, h.issued(inv, !partial))
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List every stored invitation, newest first, with its state and expiry. Requires the issue-invitations capability.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	invitesdk.ListInvitationsResponse	"Invitations"
//	@Failure		401	{object}	invitesdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403	{object}	invitesdk.ErrorResponse				"Not allowed to manage invitations"
//	@Failure		500	{object}	invitesdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Lifecycle.List(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, r, err, "list invitations")
		return
	}

	out := invitesdk.ListInvitationsResponse{Invitations: make([]invitesdk.Invitation, 0, len(list))}
	for _, st := range list {
		out.Invitations = append(out.Invitations, toInvitation(st))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get Invitation
//	@Description	Fetch one invitation by id. Requires the issue-invitations capability.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string					true	"Invitation ID"
//	@Success		200	{object}	invitesdk.Invitation	"Invitation"
//	@Failure		401	{object}	invitesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	invitesdk.ErrorResponse	"Not allowed to manage invitations"
//	@Failure		404	{object}	invitesdk.ErrorResponse	"Invitation not found"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [get].
func (h *InvitationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.Lifecycle.Get(r.Context(), actorFromRequest(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "get invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitation(st))
}

// HandleResend godoc
//
//	@Summary		Resend Invitation
//	@Description	Email a pending invitation again without changing it. Requires the issue-invitations capability.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string								true	"Invitation ID"
//	@Success		200	{object}	invitesdk.IssueInvitationResponse	"Invitation, email_sent=false if delivery failed"
//	@Failure		401	{object}	invitesdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403	{object}	invitesdk.ErrorResponse				"Not allowed to manage invitations"
//	@Failure		404	{object}	invitesdk.ErrorResponse				"Invitation not found"
//	@Failure		410	{object}	invitesdk.ErrorResponse				"Invitation expired"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/send [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Lifecycle.Resend(r.Context(), actorFromRequest(r), r.PathValue("id"))
	partial := service.IsPartialIssue(inv, err)
	if err != nil && !partial {
		writeError(w, r, err, "resend invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.issued(inv, !partial))
}

func (h *InvitationsHandler) issued(inv domain.Invitation, emailSent bool) invitesdk.IssueInvitationResponse {
	return invitesdk.IssueInvitationResponse{
		Invitation: toInvitation(service.InvitationStatus{
			Invitation: inv,
			State:      domain.StatePending,
			ExpiresAt:  h.Lifecycle.ExpiresAt(inv),
		}),
		Token:     inv.Token,
		AcceptURL: h.Lifecycle.AcceptURL(inv.Token),
		EmailSent: emailSent,
	}
}

func toInvitation(st service.InvitationStatus) invitesdk.Invitation {
	return invitesdk.Invitation{
		ID:        st.ID,
		FirstName: st.FirstName,
		Email:     st.Email,
		Groups:    append([]string{}, st.Groups...),
		InvitedBy: st.InvitedBy,
		State:     string(st.State),
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
		ExpiresAt: st.ExpiresAt,
	}
}
