package mail

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

// LogMailer renders messages and writes them to the request logger instead
// of delivering them. Intended for development.
type LogMailer struct {
	Renderer *Renderer
}

func (m *LogMailer) Send(ctx context.Context, msg service.Message) error {
	body, err := m.Renderer.Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("mail not delivered (log driver)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("template", msg.Template),
		slog.String("body", body.Text),
	)
	return nil
}
