package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/pkg/slogx"
	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig describes the outgoing mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// Timeout bounds the dial and each SMTP command.
	Timeout time.Duration
}

// SMTPMailer delivers messages through an SMTP relay. A connection is opened
// per message.
type SMTPMailer struct {
	cfg      SMTPConfig
	renderer *Renderer
}

// NewSMTPMailer validates cfg. It does not connect.
func NewSMTPMailer(cfg SMTPConfig, renderer *Renderer) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("mail: smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail: from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{cfg: cfg, renderer: renderer}, nil
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(m.cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	return gomail.NewClient(m.cfg.Host, opts...)
}

// message builds the MIME message for msg.
func (m *SMTPMailer) message(msg service.Message) (*gomail.Msg, error) {
	body, err := m.renderer.Render(msg.Template, msg.Data)
	if err != nil {
		return nil, err
	}

	out := gomail.NewMsg()
	if err := out.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("mail: from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail: to address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, body.Text)
	out.AddAlternativeString(gomail.TypeTextHTML, body.HTML)
	return out, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg service.Message) error {
	log := slogx.FromContext(ctx)

	// 1. Render before touching the network
	out, err := m.message(msg)
	if err != nil {
		return err
	}

	// 2. Deliver
	c, err := m.client()
	if err != nil {
		return fmt.Errorf("mail: smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}

	log.Debug("mail sent",
		slog.String("template", msg.Template),
		slog.String("smtp_host", m.cfg.Host),
	)
	return nil
}
