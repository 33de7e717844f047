package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite"
	"github.com/aussiebroadwan/invites/pkg/idx"
	"github.com/stretchr/testify/require"
)

var admin = &domain.Actor{
	ID:          "01J0ADMIN0000000000000000",
	DisplayName: "Grace",
	Scopes:      []string{"invitations:issue"},
}

// fakeClock is a settable clock shared by every service in a harness.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

// spyAccounts records calls and delegates to an inner provider.
type spyAccounts struct {
	inner   AccountProvider
	mu      sync.Mutex
	created int
	err     error

	// onCreate runs before delegating, inside the provider call.
	onCreate func()
}

func (s *spyAccounts) AccountExists(ctx context.Context, email string) (bool, error) {
	return s.inner.AccountExists(ctx, email)
}

func (s *spyAccounts) CreateAccount(ctx context.Context, email, firstName, surname, password string) (string, error) {
	s.mu.Lock()
	s.created++
	s.mu.Unlock()
	if s.onCreate != nil {
		s.onCreate()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.inner.CreateAccount(ctx, email, firstName, surname, password)
}

func (s *spyAccounts) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

type spyGroups struct {
	inner    GroupSystem
	mu       sync.Mutex
	resolved int
}

func (s *spyGroups) ResolveGroup(ctx context.Context, code string) (string, bool, error) {
	s.mu.Lock()
	s.resolved++
	s.mu.Unlock()
	return s.inner.ResolveGroup(ctx, code)
}

func (s *spyGroups) AddMember(ctx context.Context, groupID, accountID string) error {
	return s.inner.AddMember(ctx, groupID, accountID)
}

func (s *spyGroups) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

type countingRecorder struct {
	mu                         sync.Mutex
	issued, accepted, mailFail int
	skipped                    int
}

func (r *countingRecorder) InvitationIssued()     { r.mu.Lock(); r.issued++; r.mu.Unlock() }
func (r *countingRecorder) InvitationAccepted()   { r.mu.Lock(); r.accepted++; r.mu.Unlock() }
func (r *countingRecorder) InvitationMailFailed() { r.mu.Lock(); r.mailFail++; r.mu.Unlock() }
func (r *countingRecorder) GroupsSkipped(n int)   { r.mu.Lock(); r.skipped += n; r.mu.Unlock() }

type harness struct {
	store     *sqlite.Store
	clock     *fakeClock
	mailer    *fakeMailer
	accounts  *spyAccounts
	groups    *spyGroups
	groupSvc  *GroupService
	invites   *InvitationStore
	lifecycle *InvitationLifecycle
	recorder  *countingRecorder
}

type harnessOption func(*harness)

func withTransactor() harnessOption {
	return func(h *harness) {
		h.lifecycle.Transactor = &StoreTransactor{Store: h.store, Clock: h.clock}
	}
}

func withDaysToExpiry(days int) harnessOption {
	return func(h *harness) { h.lifecycle.Config.DaysToExpiry = days }
}

func withForceRequireGroup() harnessOption {
	return func(h *harness) { h.lifecycle.Config.ForceRequireGroup = true }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "invites.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	caps := DefaultScopeCapabilities()
	accounts := &spyAccounts{inner: &AccountService{Store: s, Clock: clock}}
	groupSvc := &GroupService{Store: s, Clock: clock, Capabilities: caps}
	groups := &spyGroups{inner: groupSvc}
	invites := &InvitationStore{Store: s, Accounts: accounts, Tokens: RandomTokens{}, Clock: clock}
	mailer := &fakeMailer{}
	recorder := &countingRecorder{}

	h := &harness{
		store:    s,
		clock:    clock,
		mailer:   mailer,
		accounts: accounts,
		groups:   groups,
		groupSvc: groupSvc,
		invites:  invites,
		recorder: recorder,
		lifecycle: &InvitationLifecycle{
			Invitations:  invites,
			Accounts:     accounts,
			Groups:       groups,
			Mailer:       mailer,
			Capabilities: caps,
			Recorder:     recorder,
			Config: LifecycleConfig{
				DaysToExpiry: 7,
				SiteURL:      "https://invites.example.org",
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *harness) createGroup(t *testing.T, code string) domain.Group {
	t.Helper()
	g, err := h.groupSvc.Create(context.Background(), admin, code, code)
	require.NoError(t, err)
	return g
}

func (h *harness) issue(t *testing.T, firstName, email string, groups ...string) domain.Invitation {
	t.Helper()
	inv, err := h.lifecycle.Issue(context.Background(), admin, firstName, email, domain.NewGroupSet(groups...))
	require.NoError(t, err)
	return inv
}

func (h *harness) seedAccount(t *testing.T, email string) string {
	t.Helper()
	acct := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    "Existing",
		PasswordHash: "x",
		CreatedAt:    h.clock.Now(),
		UpdatedAt:    h.clock.Now(),
	}
	require.NoError(t, h.store.Accounts().CreateAccount(context.Background(), acct))
	return acct.ID
}

// brokenGroups fails every membership write.
type brokenGroups struct{ GroupSystem }

func (brokenGroups) AddMember(context.Context, string, string) error {
	return errors.New("group backend unavailable")
}

// breakingTransactor runs the real transaction but swaps the group system for
// one that fails.
type breakingTransactor struct{ inner Transactor }

func (b breakingTransactor) InTx(ctx context.Context, fn func(p Provisioning) error) error {
	return b.inner.InTx(ctx, func(p Provisioning) error {
		p.Groups = brokenGroups{p.Groups}
		return fn(p)
	})
}

// trackingTransactor reports whether a transaction is currently open.
type trackingTransactor struct {
	inner Transactor
	open  atomic.Bool
}

func (t *trackingTransactor) InTx(ctx context.Context, fn func(p Provisioning) error) error {
	return t.inner.InTx(ctx, func(p Provisioning) error {
		t.open.Store(true)
		defer t.open.Store(false)
		return fn(p)
	})
}

// preparingAccounts records when passwords are hashed relative to tx.
type preparingAccounts struct {
	*AccountService
	tx *trackingTransactor

	prepared     int
	preparedInTx bool
	hash         string
}

func (a *preparingAccounts) PreparePassword(ctx context.Context, password string) (string, error) {
	a.prepared++
	a.preparedInTx = a.preparedInTx || a.tx.open.Load()
	hash, err := a.AccountService.PreparePassword(ctx, password)
	a.hash = hash
	return hash, err
}
