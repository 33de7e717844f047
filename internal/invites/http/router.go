package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/obs"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/pkg/httpx"
	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/aussiebroadwan/invites/pkg/slogx"

	_ "github.com/aussiebroadwan/invites/api/invites" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *obs.Metrics

	store     store.Store
	Lifecycle *service.InvitationLifecycle
	Groups    *service.GroupService

	// LoginURL is returned after a successful accept so clients can send
	// the new user to sign in. Optional.
	LoginURL string

	// LoginBackURL is passed to the login page as BackURL, where the user
	// lands after signing in. Ignored without LoginURL.
	LoginBackURL string
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *obs.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      metrics,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Instrument,
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerAccept()
	r.registerGroups()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Invitation Service API
//	@version		0.1.0
//	@description	Invite new users by email. An administrator issues an invitation carrying a
//	@description	single-use token; the invitee accepts it to create an account and join the
//	@description	invitation's groups.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/invites
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token from the auth service. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{Lifecycle: r.Lifecycle}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /v1/invitations", httpx.Chain(http.HandlerFunc(h.HandleIssue), authn))
	r.Mux.Handle("GET /v1/invitations", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
	r.Mux.Handle("GET /v1/invitations/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), authn))
	r.Mux.Handle("POST /v1/invitations/{id}/send", httpx.Chain(http.HandlerFunc(h.HandleResend), authn))
}

func (r *Router) registerAccept() {
	// Public: the token is the credential
	h := &AcceptHandler{Lifecycle: r.Lifecycle, LoginURL: r.LoginURL, LoginBackURL: r.LoginBackURL}

	r.Mux.HandleFunc("GET /v1/accept/{token}", h.HandleInspect)
	r.Mux.HandleFunc("POST /v1/accept/{token}", h.HandleAccept)
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{Groups: r.Groups}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /v1/groups", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
	r.Mux.Handle("POST /v1/groups", httpx.Chain(http.HandlerFunc(h.HandleCreate), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
