package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

// HistoryChange is emitted when a user's history document changes. It is the
// server-side analog of a client subscribing to its own bookings document.
type HistoryChange struct {
	UserID    string
	Operation string
	Entries   int
}

type HistoryWatcher struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewHistoryWatcher(db *mongo.Database, logger observability.Logger) *HistoryWatcher {
	return &HistoryWatcher{
		coll:   db.Collection(bookingsCollection),
		logger: logger,
	}
}

// Watch tails the bookings collection change stream and forwards changes to
// history documents. Show-record keys share the collection and are filtered
// out by key shape. The channel closes when ctx is cancelled or the stream
// dies; the caller decides whether to reopen.
func (w *HistoryWatcher) Watch(ctx context.Context) (<-chan HistoryChange, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}}},
	}
	stream, err := w.coll.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, err
	}

	out := make(chan HistoryChange)
	go func() {
		defer close(out)
		defer stream.Close(context.WithoutCancel(ctx))

		for stream.Next(ctx) {
			var ev struct {
				OperationType string `bson:"operationType"`
				DocumentKey   struct {
					ID string `bson:"_id"`
				} `bson:"documentKey"`
				FullDocument historyDoc `bson:"fullDocument"`
			}
			if err := stream.Decode(&ev); err != nil {
				w.logger.WithError(err).Error("failed to decode change event")
				continue
			}
			if IsShowBookingKey(ev.DocumentKey.ID) {
				continue
			}
			select {
			case out <- HistoryChange{
				UserID:    ev.DocumentKey.ID,
				Operation: ev.OperationType,
				Entries:   len(ev.FullDocument.Bookings),
			}:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			w.logger.WithError(err).Error("history change stream closed")
		}
	}()
	return out, nil
}
