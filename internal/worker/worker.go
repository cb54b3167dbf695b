package worker

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"tasklane.app/server/internal/queue"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to Tasklane, {{.Name}}!</h2>
<p>Your account is ready. Create a workspace, invite your team and start
moving tasks across the board.</p>
`))

// Worker turns queued mail messages into delivered emails.
type Worker struct {
	sender MailSender
}

func New(sender MailSender) *Worker {
	return &Worker{sender: sender}
}

// Handle processes one message. An unknown kind is an error so it
// surfaces on the DLQ instead of vanishing.
func (w *Worker) Handle(ctx context.Context, msg queue.MailMessage) error {
	switch msg.Kind {
	case queue.MailKindWelcome:
		return w.sendWelcome(ctx, msg)
	default:
		return fmt.Errorf("unknown mail kind %q", msg.Kind)
	}
}

func (w *Worker) sendWelcome(ctx context.Context, msg queue.MailMessage) error {
	var body strings.Builder
	if err := welcomeTemplate.Execute(&body, struct{ Name string }{Name: msg.Name}); err != nil {
		return fmt.Errorf("rendering welcome template: %w", err)
	}

	if err := w.sender.Send(ctx, msg.To, "Welcome to Tasklane", body.String()); err != nil {
		return err
	}

	slog.InfoContext(ctx, "welcome mail sent", "to", msg.To)
	return nil
}
