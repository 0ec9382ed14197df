// Package notify delivers user-facing emails off the request path. Delivery is
// best effort: a message that cannot be queued or sent is logged and counted,
// never retried.
package notify

import (
	"context"
	"errors"
)

// Message kinds, used as a log attribute.
const (
	KindOTP      = "otp"
	KindApproval = "approval"
)

var ErrNoRecipient = errors.New("notify: message has no recipient")

// Message is a single email. HTML is optional; when set the message is sent
// as multipart/alternative.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Kind    string
}

// Sender delivers one message. Implementations must honour ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }
