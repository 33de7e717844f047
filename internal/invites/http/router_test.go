package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/obs"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite"
	"github.com/aussiebroadwan/invites/pkg/cryptox"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://auth.example.org"

type settableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *settableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *settableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []service.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg service.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	handler http.Handler
	store   *sqlite.Store
	signer  jwtx.Signer
	keys    *jwtx.KeySet
	clock   *settableClock
	mailer  *recordingMailer
}

func newTestServer(t *testing.T, opts ...func(*Router)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "invites.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	clock := &settableClock{now: time.Now().UTC()}
	mailer := &recordingMailer{}
	caps := service.DefaultScopeCapabilities()
	metrics := obs.NewMetrics("test")

	accounts := &service.AccountService{Store: st, Clock: clock}
	groups := &service.GroupService{Store: st, Clock: clock, Capabilities: caps}
	lifecycle := &service.InvitationLifecycle{
		Invitations: &service.InvitationStore{
			Store:    st,
			Accounts: accounts,
			Tokens:   service.RandomTokens{},
			Clock:    clock,
		},
		Accounts:     accounts,
		Groups:       groups,
		Mailer:       mailer,
		Capabilities: caps,
		Transactor:   &service.StoreTransactor{Store: st, Clock: clock},
		Recorder:     metrics,
		Config: service.LifecycleConfig{
			DaysToExpiry: 7,
			SiteURL:      "https://invites.example.org/",
		},
	}

	router := NewRouter(keys, jwtx.NewCommonEdDSA(keys, jwtx.VerifyOptions{Issuer: testIssuer}),
		"test", st, slogx.Discard(), metrics)
	router.Lifecycle = lifecycle
	router.Groups = groups
	router.LoginURL = "https://auth.example.org/login"
	for _, opt := range opts {
		opt(router)
	}
	router.ApplyRoutes()

	return &testServer{handler: router, store: st, signer: signer, keys: keys, clock: clock, mailer: mailer}
}

func (s *testServer) token(t *testing.T, scopes ...string) string {
	t.Helper()
	tok, err := s.signer.Sign(jwtx.NewAccessClaims("01J0ADMIN0000000000000000", scopes, time.Hour,
		testIssuer, nil, "grace", "Grace Hopper", time.Now()))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestIssueAndAcceptOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "invitations:issue")

	rec := s.do(t, http.MethodPost, "/v1/groups", admin, invitesdk.CreateGroupRequest{Code: "editors", Title: "Editors"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{
		FirstName: "Ada",
		Email:     "ada@example.org",
		Groups:    []string{"editors"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	issued := decode[invitesdk.IssueInvitationResponse](t, rec)
	require.True(t, issued.EmailSent)
	require.Equal(t, "pending", issued.State)
	require.Equal(t, "https://invites.example.org/v1/accept/"+issued.Token, issued.AcceptURL)
	require.Len(t, s.mailer.sent, 1)
	require.Equal(t, "Invitation from Grace Hopper", s.mailer.sent[0].Subject)

	rec = s.do(t, http.MethodGet, "/v1/accept/"+issued.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inspected := decode[invitesdk.InspectResponse](t, rec)
	require.Equal(t, "Ada", inspected.FirstName)
	require.Equal(t, "pending", inspected.State)

	rec = s.do(t, http.MethodPost, "/v1/accept/"+issued.Token, "", invitesdk.AcceptRequest{
		FirstName: "Ada", Surname: "Lovelace", Password: "S3cure!Pass", PasswordConfirm: "S3cure!Pas",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Passwords do not match.", decode[invitesdk.ErrorResponse](t, rec).ErrorDescription)

	rec = s.do(t, http.MethodPost, "/v1/accept/"+issued.Token, "", invitesdk.AcceptRequest{
		FirstName: "Ada", Surname: "Lovelace", Password: "S3cure!Pass", PasswordConfirm: "S3cure!Pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	accepted := decode[invitesdk.AcceptResponse](t, rec)
	require.NotEmpty(t, accepted.AccountID)
	require.Equal(t, "https://auth.example.org/login", accepted.LoginURL)

	rec = s.do(t, http.MethodGet, "/v1/accept/"+issued.Token, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Contains(t, rec.Body.String(), "invites_accepted_total 1")
}

func TestAcceptLoginBackURL(t *testing.T) {
	s := newTestServer(t, func(r *Router) {
		r.LoginURL = "https://auth.example.org/login?theme=dark"
		r.LoginBackURL = "https://app.example.org/welcome?tab=groups"
	})

	rec := s.do(t, http.MethodPost, "/v1/invitations", s.token(t, "invitations:issue"),
		invitesdk.IssueInvitationRequest{FirstName: "Ada", Email: "ada@example.org"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	issued := decode[invitesdk.IssueInvitationResponse](t, rec)

	rec = s.do(t, http.MethodPost, "/v1/accept/"+issued.Token, "", invitesdk.AcceptRequest{
		FirstName: "Ada", Surname: "Lovelace", Password: "S3cure!Pass", PasswordConfirm: "S3cure!Pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t,
		"https://auth.example.org/login?BackURL=https%3A%2F%2Fapp.example.org%2Fwelcome%3Ftab%3Dgroups&theme=dark",
		decode[invitesdk.AcceptResponse](t, rec).LoginURL)
}

func TestLoginLink(t *testing.T) {
	tests := []struct {
		name, login, back, want string
	}{
		{"no login url", "", "https://app.example.org", ""},
		{"no back url", "https://auth.example.org/login", "", "https://auth.example.org/login"},
		{"adds back url", "https://auth.example.org/login", "/home",
			"https://auth.example.org/login?BackURL=%2Fhome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AcceptHandler{LoginURL: tt.login, LoginBackURL: tt.back}
			require.Equal(t, tt.want, h.loginLink())
		})
	}
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/invitations", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/invitations", s.token(t, "profile:read"), invitesdk.IssueInvitationRequest{
		FirstName: "Ada", Email: "ada@example.org",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="insufficient_scope"`)
	require.Equal(t, invitesdk.ErrorCodeInsufficientScope, decode[invitesdk.ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodGet, "/v1/groups", s.token(t, "profile:read"), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/groups", s.token(t, "invitations:issue"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIssueErrors(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin:write")

	rec := s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{Email: "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"First name is required.", "Email must be a valid email address."},
		decode[invitesdk.ErrorResponse](t, rec).Reasons)

	req := httptest.NewRequest(http.MethodPost, "/v1/invitations", strings.NewReader(`{"email":"a@b.c","role":"x"}`))
	req.Header.Set("Authorization", "Bearer "+admin)
	raw := httptest.NewRecorder()
	s.handler.ServeHTTP(raw, req)
	require.Equal(t, http.StatusBadRequest, raw.Code)

	rec = s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{
		FirstName: "Ada", Email: "ada@example.org", Groups: []string{"nobody"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"Unknown groups: nobody."}, decode[invitesdk.ErrorResponse](t, rec).Reasons)

	body := invitesdk.IssueInvitationRequest{FirstName: "Ada", Email: "ada@example.org"}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/v1/invitations", admin, body).Code)
	rec = s.do(t, http.MethodPost, "/v1/invitations", admin, body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, []string{service.ReasonAlreadyInvited}, decode[invitesdk.ErrorResponse](t, rec).Reasons)

	s.mailer.err = errors.New("relay down")
	rec = s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{
		FirstName: "Grace", Email: "grace@example.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.False(t, decode[invitesdk.IssueInvitationResponse](t, rec).EmailSent)
}

func TestExpiredInvitation(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "invitations:issue")

	rec := s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{
		FirstName: "Ada", Email: "ada@example.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	issued := decode[invitesdk.IssueInvitationResponse](t, rec)

	s.clock.Advance(8 * 24 * time.Hour)

	rec = s.do(t, http.MethodGet, "/v1/accept/"+issued.Token, "", nil)
	require.Equal(t, http.StatusGone, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/accept/"+issued.Token, "", invitesdk.AcceptRequest{
		FirstName: "Ada", Surname: "Lovelace", Password: "S3cure!Pass", PasswordConfirm: "S3cure!Pass",
	})
	require.Equal(t, http.StatusGone, rec.Code)
	require.Equal(t, "This invitation has expired.", decode[invitesdk.ErrorResponse](t, rec).ErrorDescription)

	rec = s.do(t, http.MethodPost, "/v1/invitations/"+issued.ID+"/send", admin, nil)
	require.Equal(t, http.StatusGone, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/invitations", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[invitesdk.ListInvitationsResponse](t, rec)
	require.Len(t, list.Invitations, 1)
	require.Equal(t, "expired", list.Invitations[0].State)
	require.NotContains(t, rec.Body.String(), issued.Token)
}

func TestGetAndResend(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "invitations:issue")

	rec := s.do(t, http.MethodPost, "/v1/invitations", admin, invitesdk.IssueInvitationRequest{
		FirstName: "Ada", Email: "ada@example.org",
	})
	issued := decode[invitesdk.IssueInvitationResponse](t, rec)

	rec = s.do(t, http.MethodGet, "/v1/invitations/"+issued.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ada@example.org", decode[invitesdk.Invitation](t, rec).Email)

	rec = s.do(t, http.MethodGet, "/v1/invitations/missing", admin, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/invitations/"+issued.ID+"/send", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[invitesdk.IssueInvitationResponse](t, rec).EmailSent)
	require.Len(t, s.mailer.sent, 2)
}

func TestGroupsOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "invitations:issue")

	rec := s.do(t, http.MethodPost, "/v1/groups", admin, invitesdk.CreateGroupRequest{Code: "editors"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "editors", decode[invitesdk.Group](t, rec).Title)

	rec = s.do(t, http.MethodPost, "/v1/groups", admin, invitesdk.CreateGroupRequest{Code: "editors"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/groups", s.token(t), invitesdk.CreateGroupRequest{Code: "viewers"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/groups", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode[invitesdk.ListGroupsResponse](t, rec).Groups
	require.Len(t, groups, 1)
	require.Equal(t, "editors", groups[0].Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", decode[invitesdk.HealthResponse](t, rec).Version)

	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[invitesdk.HealthResponse](t, rec).Checks.Keys)

	notReady := httptest.NewRecorder()
	ReadyzHandler(time.Now(), "test", s.store, jwtx.NewKeySet()).
		ServeHTTP(notReady, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	health := decode[invitesdk.HealthResponse](t, notReady)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
