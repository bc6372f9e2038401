package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers one text message to a destination. The meaning of
// destination is sink specific (a Telegram chat id, a Slack channel).
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
}

// Multi sends to every non-nil notifier and combines the failures.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, destination, text string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, destination, text))
	}
	return err
}

// Pinned always delivers to Destination, whatever the caller passes. It lets
// sinks with different addressing share one Multi.
type Pinned struct {
	Notifier
	Destination string
}

func (p Pinned) Send(ctx context.Context, _ string, text string) error {
	return p.Notifier.Send(ctx, p.Destination, text)
}
