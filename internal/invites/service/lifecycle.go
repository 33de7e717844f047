package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/pkg/cryptox"
	"github.com/aussiebroadwan/invites/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

const DefaultDaysToExpiry = 7

// TemplateInvitation is the mail template used for invitation emails.
const TemplateInvitation = "invitation"

// InvitationEmail is the data handed to the invitation mail template.
type InvitationEmail struct {
	FirstName     string
	InviterName   string
	AcceptURL     string
	ExpiresInDays int
}

type LifecycleConfig struct {
	// DaysToExpiry is how many days an invitation stays valid after its last
	// modification. Zero expires invitations after half a day. Negative values
	// fall back to DefaultDaysToExpiry.
	DaysToExpiry int

	// ForceRequireGroup rejects invitations without at least one group.
	ForceRequireGroup bool

	// MailTimeout bounds a single email delivery. Zero means no extra bound.
	MailTimeout time.Duration

	// SiteURL is the public base URL used to build accept links.
	SiteURL string
}

// InvitationStatus is an invitation together with its derived state.
type InvitationStatus struct {
	domain.Invitation
	State     domain.State
	ExpiresAt time.Time
}

// InvitationLifecycle drives the Issue and Accept transitions.
type InvitationLifecycle struct {
	Invitations  *InvitationStore
	Accounts     AccountProvider
	Groups       GroupSystem
	Mailer       Mailer
	Capabilities CapabilityChecker

	// Transactor is optional. When set, account creation, group membership and
	// the invitation delete commit together.
	Transactor Transactor
	Recorder   Recorder
	Config     LifecycleConfig
}

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

func (l *InvitationLifecycle) daysToExpiry() int {
	if l.Config.DaysToExpiry < 0 {
		return DefaultDaysToExpiry
	}
	return l.Config.DaysToExpiry
}

func (l *InvitationLifecycle) recorder() Recorder {
	if l.Recorder == nil {
		return nopRecorder{}
	}
	return l.Recorder
}

func (l *InvitationLifecycle) authorize(actor *domain.Actor) error {
	if actor == nil || l.Capabilities == nil ||
		!l.Capabilities.HasCapability(actor, domain.CapabilityIssueInvitations) {
		return domain.NewError(domain.KindForbidden, "You do not have permission to manage invitations.")
	}
	return nil
}

// AcceptURL is the link an invitee follows to accept.
func (l *InvitationLifecycle) AcceptURL(token string) string {
	return strings.TrimRight(l.Config.SiteURL, "/") + "/v1/accept/" + url.PathEscape(token)
}

// ExpiresAt is the moment an invitation stops being accepted, to the nearest
// half day of the rounding rule.
func (l *InvitationLifecycle) ExpiresAt(inv domain.Invitation) time.Time {
	return inv.UpdatedAt.Add(time.Duration(l.daysToExpiry())*24*time.Hour + 12*time.Hour)
}

// Issue creates an invitation on behalf of actor and emails the invitee.
//
// If the email cannot be sent the invitation is kept and returned together
// with a Dependency error so the caller can report a partial success.
func (l *InvitationLifecycle) Issue(
	ctx context.Context,
	actor *domain.Actor,
	firstName string,
	email string,
	groups domain.GroupSet,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorise before revealing anything about existing records
	if err := l.authorize(actor); err != nil {
		log.Warn("invitation issue forbidden")
		return domain.Invitation{}, err
	}

	// 2. Validate input
	firstName = strings.TrimSpace(firstName)
	email = strings.TrimSpace(email)
	groups = domain.NewGroupSet(groups...)

	var reasons []string
	if firstName == "" {
		reasons = append(reasons, "First name is required.")
	}
	switch {
	case email == "":
		reasons = append(reasons, "Email is required.")
	case validate.Var(email, "email") != nil:
		reasons = append(reasons, "Email must be a valid email address.")
	}
	if l.Config.ForceRequireGroup && groups.Empty() {
		reasons = append(reasons, "At least one group is required.")
	}
	unknown, err := l.unknownGroups(ctx, groups)
	if err != nil {
		return domain.Invitation{}, err
	}
	if len(unknown) > 0 {
		reasons = append(reasons, fmt.Sprintf("Unknown groups: %s.", strings.Join(unknown, ", ")))
	}
	if len(reasons) > 0 {
		return domain.Invitation{}, domain.NewError(domain.KindValidation, reasons...)
	}

	// 3. Create the record
	inv, err := l.Invitations.Create(ctx, firstName, email, groups, actor.ID)
	if err != nil {
		return domain.Invitation{}, err
	}
	l.recorder().InvitationIssued()

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("email", inv.Email),
		slog.String("invited_by", actor.ID),
	)

	// 4. Notify the invitee
	if err := l.send(ctx, inv, actor); err != nil {
		return inv, err
	}
	return inv, nil
}

// unknownGroups returns the codes in groups that do not name a group. Groups
// removed after issue are still skipped at accept time.
func (l *InvitationLifecycle) unknownGroups(ctx context.Context, groups domain.GroupSet) ([]string, error) {
	var unknown []string
	for _, code := range groups {
		_, found, err := l.Groups.ResolveGroup(ctx, code)
		if err != nil {
			slogx.FromContext(ctx).Error("group lookup failed", slog.String("group", code), slog.Any("error", err))
			return nil, domain.WrapError(domain.KindDependency, err, "Groups could not be checked.")
		}
		if !found {
			unknown = append(unknown, code)
		}
	}
	return unknown, nil
}

func (l *InvitationLifecycle) send(ctx context.Context, inv domain.Invitation, actor *domain.Actor) error {
	log := slogx.FromContext(ctx)

	if l.Config.MailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Config.MailTimeout)
		defer cancel()
	}

	inviter := actor.DisplayName
	if inviter == "" {
		inviter = actor.ID
	}

	err := l.Mailer.Send(ctx, Message{
		To:       inv.Email,
		Subject:  fmt.Sprintf("Invitation from %s", inviter),
		Template: TemplateInvitation,
		Data: InvitationEmail{
			FirstName:     inv.FirstName,
			InviterName:   inviter,
			AcceptURL:     l.AcceptURL(inv.Token),
			ExpiresInDays: l.daysToExpiry(),
		},
	})
	if err != nil {
		l.recorder().InvitationMailFailed()
		log.Error("failed to send invitation email",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.WrapError(domain.KindDependency, err,
			"The invitation was saved but the email could not be sent.")
	}
	return nil
}

// Inspect reports whether token can still be accepted without consuming it.
func (l *InvitationLifecycle) Inspect(ctx context.Context, token string) (domain.Invitation, domain.State, error) {
	inv, found, err := l.Invitations.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, "", err
	}
	if !found {
		return domain.Invitation{}, "", errInvitationNotFound()
	}
	if l.Invitations.IsExpired(inv, l.daysToExpiry()) {
		return inv, domain.StateExpired, nil
	}
	return inv, domain.StatePending, nil
}

// Accept consumes the invitation behind token and provisions an account for
// its email, returning the new account id.
//
// An unknown token fails before any collaborator is called and an expired
// one leaves the record in place. Provisioning failures keep the invitation
// so the invitee can retry.
func (l *InvitationLifecycle) Accept(
	ctx context.Context,
	token string,
	firstName string,
	surname string,
	password string,
) (string, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the token
	inv, found, err := l.Invitations.FindByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if !found {
		log.Warn("invitation accept attempted with unknown token",
			slog.String("token_fp", cryptox.FingerprintToken(token)),
		)
		return "", errInvitationNotFound()
	}
	ctx = slogx.With(ctx, slog.String("invitation_id", inv.ID))
	log = slogx.FromContext(ctx)

	// 2. Check expiry
	if l.Invitations.IsExpired(inv, l.daysToExpiry()) {
		log.Info("invitation accept attempted after expiry")
		return "", domain.NewError(domain.KindExpired, "This invitation has expired.")
	}

	// 3. Validate input
	firstName = strings.TrimSpace(firstName)
	surname = strings.TrimSpace(surname)
	var reasons []string
	if firstName == "" {
		reasons = append(reasons, "First name is required.")
	}
	if surname == "" {
		reasons = append(reasons, "Surname is required.")
	}
	if len(reasons) > 0 {
		return "", domain.NewError(domain.KindValidation, reasons...)
	}

	// 4. Hash before any transaction opens
	creds := credentials{password: password}
	if pp, ok := l.Accounts.(PasswordPreparer); ok {
		hash, err := pp.PreparePassword(ctx, password)
		if err != nil {
			return "", accountError(ctx, err)
		}
		creds.hash = hash
	}

	// 5-7. Provision, join groups and consume the invitation
	var accountID string
	if l.Transactor != nil {
		err = l.Transactor.InTx(ctx, func(p Provisioning) error {
			// Inside the transaction the delete claims the invitation first,
			// a concurrent accept then sees it as gone.
			if err := p.Invitations.Delete(ctx, inv.ID); err != nil {
				return err
			}
			id, err := l.provision(ctx, p, inv, firstName, surname, creds)
			accountID = id
			return err
		})
		if err != nil {
			return "", err
		}
	} else {
		p := Provisioning{Accounts: l.Accounts, Groups: l.Groups, Invitations: l.Invitations}
		accountID, err = l.provision(ctx, p, inv, firstName, surname, creds)
		if err != nil {
			return "", err
		}
		if err := p.Invitations.Delete(ctx, inv.ID); err != nil {
			log.Error("failed to delete accepted invitation",
				slog.String("account_id", accountID),
				slog.Any("error", err),
			)
		}
	}

	l.recorder().InvitationAccepted()
	log.Info("invitation accepted",
		slog.String("account_id", accountID),
		slog.String("email", inv.Email),
	)

	// 8. Done
	return accountID, nil
}

// credentials carries the invitee's password and, when the provider could
// prepare it up front, its hash.
type credentials struct {
	password string
	hash     string
}

// accountError maps an account provider failure onto the lifecycle's kinds.
func accountError(ctx context.Context, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindConflict:
		return domain.WrapError(domain.KindValidation, err, domain.ReasonsOf(err)...)
	default:
		slogx.FromContext(ctx).Error("account provider failed", slog.Any("error", err))
		return domain.WrapError(domain.KindDependency, err, "The account could not be created.")
	}
}

func (l *InvitationLifecycle) provision(
	ctx context.Context,
	p Provisioning,
	inv domain.Invitation,
	firstName string,
	surname string,
	creds credentials,
) (string, error) {
	log := slogx.FromContext(ctx)

	var (
		accountID string
		err       error
	)
	if hc, ok := p.Accounts.(HashedAccountCreator); ok && creds.hash != "" {
		accountID, err = hc.CreateAccountWithHash(ctx, inv.Email, firstName, surname, creds.hash)
	} else {
		accountID, err = p.Accounts.CreateAccount(ctx, inv.Email, firstName, surname, creds.password)
	}
	if err != nil {
		return "", accountError(ctx, err)
	}

	var skipped []string
	for _, code := range inv.Groups {
		groupID, found, err := p.Groups.ResolveGroup(ctx, code)
		if err != nil {
			log.Error("group lookup failed", slog.String("group", code), slog.Any("error", err))
			return "", domain.WrapError(domain.KindDependency, err, "Group membership could not be assigned.")
		}
		if !found {
			skipped = append(skipped, code)
			continue
		}
		if err := p.Groups.AddMember(ctx, groupID, accountID); err != nil {
			log.Error("failed to add group member", slog.String("group", code), slog.Any("error", err))
			return "", domain.WrapError(domain.KindDependency, err, "Group membership could not be assigned.")
		}
	}

	if len(skipped) > 0 {
		l.recorder().GroupsSkipped(len(skipped))
		log.Warn("skipped unresolvable groups",
			slog.String("account_id", accountID),
			slog.Any("groups", skipped),
		)
	}

	return accountID, nil
}

// Resend emails a pending invitation again without modifying it.
func (l *InvitationLifecycle) Resend(ctx context.Context, actor *domain.Actor, id string) (domain.Invitation, error) {
	if err := l.authorize(actor); err != nil {
		return domain.Invitation{}, err
	}

	inv, err := l.Invitations.Get(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}
	if l.Invitations.IsExpired(inv, l.daysToExpiry()) {
		return domain.Invitation{}, domain.NewError(domain.KindExpired, "This invitation has expired.")
	}

	if err := l.send(ctx, inv, actor); err != nil {
		return inv, err
	}
	return inv, nil
}

// List returns every stored invitation with its derived state.
func (l *InvitationLifecycle) List(ctx context.Context, actor *domain.Actor) ([]InvitationStatus, error) {
	if err := l.authorize(actor); err != nil {
		return nil, err
	}

	list, err := l.Invitations.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]InvitationStatus, 0, len(list))
	for _, inv := range list {
		out = append(out, l.status(inv))
	}
	return out, nil
}

// Get returns one invitation with its derived state.
func (l *InvitationLifecycle) Get(ctx context.Context, actor *domain.Actor, id string) (InvitationStatus, error) {
	if err := l.authorize(actor); err != nil {
		return InvitationStatus{}, err
	}

	inv, err := l.Invitations.Get(ctx, id)
	if err != nil {
		return InvitationStatus{}, err
	}
	return l.status(inv), nil
}

func (l *InvitationLifecycle) status(inv domain.Invitation) InvitationStatus {
	state := domain.StatePending
	if l.Invitations.IsExpired(inv, l.daysToExpiry()) {
		state = domain.StateExpired
	}
	return InvitationStatus{
		Invitation: inv,
		State:      state,
		ExpiresAt:  l.ExpiresAt(inv),
	}
}

func errInvitationNotFound() error {
	return domain.NewError(domain.KindNotFound, "This invitation could not be found.")
}

// IsPartialIssue reports whether err from Issue still produced an invitation.
func IsPartialIssue(inv domain.Invitation, err error) bool {
	return err != nil && inv.ID != "" && errors.Is(err, domain.ErrDependency)
}
