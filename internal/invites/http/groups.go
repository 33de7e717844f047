package http

import (
	"net/http"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/pkg/httpx"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
)

type GroupsHandler struct {
	Groups *service.GroupService
}

// HandleList godoc
//
//	@Summary		List Groups
//	@Description	Returns the groups an invitation can reference, ordered by title. Requires the issue-invitations capability.
//	@Tags			Groups
//	@Produce		json
//	@Success		200	{object}	invitesdk.ListGroupsResponse	"Groups"
//	@Failure		401	{object}	invitesdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403	{object}	invitesdk.ErrorResponse			"Not allowed to manage groups"
//	@Failure		500	{object}	invitesdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/groups [get].
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, r, err, "list groups")
		return
	}

	out := invitesdk.ListGroupsResponse{Groups: make([]invitesdk.Group, 0, len(groups))}
	for _, g := range groups {
		out.Groups = append(out.Groups, toGroup(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create Group
//	@Description	Add a group to the catalogue. Requires the issue-invitations capability.
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.CreateGroupRequest	true	"Group"
//	@Success		201		{object}	invitesdk.Group					"Created group"
//	@Failure		400		{object}	invitesdk.ErrorResponse			"Validation failed"
//	@Failure		403		{object}	invitesdk.ErrorResponse			"Not allowed to manage groups"
//	@Failure		409		{object}	invitesdk.ErrorResponse			"Code already in use"
//	@Security		BearerAuth
//	@Router			/v1/groups [post].
func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req invitesdk.CreateGroupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body.")
		return
	}

	g, err := h.Groups.Create(r.Context(), actorFromRequest(r), req.Code, req.Title)
	if err != nil {
		writeError(w, r, err, "create group")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGroup(g))
}

func toGroup(g domain.Group) invitesdk.Group {
	return invitesdk.Group{ID: g.ID, Code: g.Code, Title: g.Title}
}
