package service

import "context"

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
