package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/pkg/httpx"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
)

type AcceptHandler struct {
	Lifecycle    *service.InvitationLifecycle
	LoginURL     string
	LoginBackURL string
}

// loginLink is LoginURL with BackURL added to its query when configured.
func (h *AcceptHandler) loginLink() string {
	if h.LoginURL == "" || h.LoginBackURL == "" {
		return h.LoginURL
	}
	u, err := url.Parse(h.LoginURL)
	if err != nil {
		return h.LoginURL
	}
	q := u.Query()
	q.Set("BackURL", h.LoginBackURL)
	u.RawQuery = q.Encode()
	return u.String()
}

// HandleInspect godoc
//
//	@Summary		Inspect Invitation
//	@Description	Check whether an invitation token can still be accepted. Does not consume the token.
//	@Tags			Accept
//	@Produce		json
//	@Param			token	path		string						true	"Invitation token"
//	@Success		200		{object}	invitesdk.InspectResponse	"state=pending"
//	@Failure		404		{object}	invitesdk.ErrorResponse		"Unknown token"
//	@Failure		410		{object}	invitesdk.ErrorResponse		"Invitation expired"
//	@Router			/v1/accept/{token} [get].
func (h *AcceptHandler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	inv, state, err := h.Lifecycle.Inspect(r.Context(), r.PathValue("token"))
	if err != nil {
		writeError(w, r, err, "inspect invitation")
		return
	}
	if state == domain.StateExpired {
		writeError(w, r, domain.NewError(domain.KindExpired, "This invitation has expired."), "inspect invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.InspectResponse{
		State:     string(state),
		FirstName: inv.FirstName,
		Email:     inv.Email,
		ExpiresAt: h.Lifecycle.ExpiresAt(inv),
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Consume an invitation token and create the invitee's account. The account joins every group on the invitation that still exists.
//	@Tags			Accept
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string					true	"Invitation token"
//	@Param			request	body		invitesdk.AcceptRequest	true	"New account details"
//	@Success		201		{object}	invitesdk.AcceptResponse	"account_id, login_url"
//	@Failure		400		{object}	invitesdk.ErrorResponse		"Validation failed"
//	@Failure		404		{object}	invitesdk.ErrorResponse		"Unknown token"
//	@Failure		410		{object}	invitesdk.ErrorResponse		"Invitation expired"
//	@Failure		502		{object}	invitesdk.ErrorResponse		"Account or group system failed"
//	@Router			/v1/accept/{token} [post].
func (h *AcceptHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req invitesdk.AcceptRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body.")
		return
	}
	if req.Password != req.PasswordConfirm {
		writeBadRequest(w, "Passwords do not match.")
		return
	}

	accountID, err := h.Lifecycle.Accept(r.Context(), r.PathValue("token"), req.FirstName, req.Surname, req.Password)
	if err != nil {
		writeError(w, r, err, "accept invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitesdk.AcceptResponse{
		AccountID: accountID,
		LoginURL:  h.loginLink(),
	})
}
