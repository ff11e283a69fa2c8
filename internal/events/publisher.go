// Package events bridges history document changes to the message bus,
// giving downstream consumers the live view a browser client used to get by
// subscribing to its own bookings document.
package events

import (
	"context"

	mongoadapter "github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/mongo"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/rabbit"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

type Publisher struct {
	watcher   *mongoadapter.HistoryWatcher
	rabbitPub *rabbit.Publisher
	logger    observability.Logger
}

func NewPublisher(watcher *mongoadapter.HistoryWatcher, rabbitPub *rabbit.Publisher, logger observability.Logger) *Publisher {
	return &Publisher{watcher: watcher, rabbitPub: rabbitPub, logger: logger}
}

// Run consumes the change stream until ctx is cancelled. Publish failures
// are logged and skipped; the stream itself is the source of truth and a
// consumer can always re-read the document.
func (p *Publisher) Run(ctx context.Context) error {
	changes, err := p.watcher.Watch(ctx)
	if err != nil {
		return err
	}

	for change := range changes {
		ev := rabbit.HistoryChanged{
			UserID:    change.UserID,
			Operation: change.Operation,
			Entries:   change.Entries,
		}
		if err := p.rabbitPub.PublishHistoryChanged(ctx, ev); err != nil {
			p.logger.WithError(err).WithField("user_id", change.UserID).Error("failed to publish history change")
		}
	}
	return ctx.Err()
}
