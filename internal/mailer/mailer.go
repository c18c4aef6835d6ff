// Package mailer abstracts outbound email. The core only depends on the
// Mailer shape, never on a provider API.
package mailer

import "context"

// Attachment is an optional file carried with a message.
type Attachment struct {
	FileName string
	MimeType string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Mailer delivers a message and returns a provider message id. A failed
// send returns an error and nothing else changes.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
