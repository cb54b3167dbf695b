package queue

type MailKind string

const (
	MailKindWelcome MailKind = "welcome"
)

// MailMessage is the payload carried on the mail stream. Attempt counts
// deliveries so the consumer can park poison messages after a few
// retries.
type MailMessage struct {
	ID      string   `json:"id"`
	Kind    MailKind `json:"kind"`
	To      string   `json:"to"`
	Name    string   `json:"name"`
	Attempt int      `json:"attempt"`
}
