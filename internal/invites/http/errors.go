package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/pkg/httpx"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

// scopeIssueInvitations is advertised in insufficient_scope challenges.
const scopeIssueInvitations = "invitations:issue"

// writeError maps a service error onto a status code and JSON body. Domain
// errors expose their reasons; anything else is logged and hidden behind a
// generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := slogx.FromContext(r.Context())

	var (
		status int
		code   string
		desc   string
	)
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status, code, desc = http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest, "The request is invalid."
	case domain.KindConflict:
		status, code, desc = http.StatusConflict, invitesdk.ErrorCodeConflict, "The request conflicts with existing records."
	case domain.KindForbidden:
		httpx.SetInsufficientScope(w, scopeIssueInvitations)
		status, code, desc = http.StatusForbidden, invitesdk.ErrorCodeInsufficientScope, "Insufficient permissions."
	case domain.KindNotFound:
		status, code, desc = http.StatusNotFound, invitesdk.ErrorCodeNotFound, "Not found."
	case domain.KindExpired:
		status, code, desc = http.StatusGone, invitesdk.ErrorCodeExpired, "Expired."
	case domain.KindDependency:
		log.Warn(action+" failed on a dependency", slog.Any("error", err))
		status, code, desc = http.StatusBadGateway, invitesdk.ErrorCodeDependencyFailed, "An upstream service failed."
	default:
		log.Error(action+" failed", slog.Any("error", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeServerError,
			ErrorDescription: "Internal server error.",
		})
		return
	}

	reasons := domain.ReasonsOf(err)
	if len(reasons) > 0 {
		desc = reasons[0]
	}
	httpx.WriteJSON(w, status, invitesdk.ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
		Reasons:          reasons,
	})
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
		Error:            invitesdk.ErrorCodeInvalidRequest,
		ErrorDescription: desc,
		Reasons:          []string{desc},
	})
}

// actorFromRequest builds the acting user from the verified token claims,
// or returns nil for an unauthenticated request.
func actorFromRequest(r *http.Request) *domain.Actor {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return nil
	}
	return actorFromClaims(claims)
}

func actorFromClaims(c jwtx.Claims) *domain.Actor {
	return &domain.Actor{
		ID:          c.Subject,
		DisplayName: c.DisplayName(),
		Scopes:      c.Scopes,
	}
}
