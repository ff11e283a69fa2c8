// Package rabbit publishes booking events to the message bus.
package rabbit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchange = "mtb.events"

// HistoryChanged is the event emitted whenever a user's booking history
// document changes. Entries is the entry count after the change; consumers
// that need the entries re-read the document.
type HistoryChanged struct {
	UserID    string `json:"user_id"`
	Operation string `json:"operation"`
	Entries   int    `json:"entries"`
}

type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

// PublishHistoryChanged publishes the event under the
// "booking.history.updated" routing key.
func (p *Publisher) PublishHistoryChanged(ctx context.Context, ev HistoryChanged) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, exchange, "booking.history.updated", false, false, amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        body,
	})
}
