// Package mongo implements the document stores backing bookings, booking
// history and user accounts.
//
// Show bookings and user history share the "bookings" collection but use
// disjoint key shapes: "<userID>_<showID>" for a show record and the bare
// user id for the history document. The two are exposed as separate stores
// so callers can never mix the key spaces up.
//
// Every document carries a version field. Writes are full-document
// replacements guarded by the version read, so a stale writer gets
// domain.ErrVersionConflict instead of silently dropping a concurrent
// update.
package mongo

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

const bookingsCollection = "bookings"

type ShowBookingStore struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewShowBookingStore(db *mongo.Database, logger observability.Logger) *ShowBookingStore {
	return &ShowBookingStore{
		coll:   db.Collection(bookingsCollection),
		logger: logger,
	}
}

type showBookingDoc struct {
	ID      string   `bson:"_id"`
	Seats   []string `bson:"seats"`
	Date    string   `bson:"date"`
	Time    string   `bson:"time"`
	ShowID  string   `bson:"movieId"`
	Title   string   `bson:"movieTitle"`
	Version int64    `bson:"version"`
}

// ShowBookingKey builds the document id for a user+show record. The shape is
// shared with previously stored data and must stay stable.
func ShowBookingKey(userID, showID string) string {
	return userID + "_" + showID
}

// IsShowBookingKey distinguishes show-record keys from bare-user history
// keys within the shared collection.
func IsShowBookingKey(id string) bool {
	return strings.Contains(id, "_")
}

func (s *ShowBookingStore) Get(ctx context.Context, userID, showID string) (*domain.ShowBooking, error) {
	var doc showBookingDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": ShowBookingKey(userID, showID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to get show booking")
		return nil, err
	}
	return &domain.ShowBooking{
		Seats:   doc.Seats,
		Date:    doc.Date,
		Time:    doc.Time,
		ShowID:  doc.ShowID,
		Title:   doc.Title,
		Version: doc.Version,
	}, nil
}

// Put overwrites the record, guarded by the version the caller read.
// Version 0 means the caller saw no document; the write then inserts and a
// duplicate key is reported as a version conflict so the caller re-reads.
func (s *ShowBookingStore) Put(ctx context.Context, userID, showID string, b *domain.ShowBooking) error {
	doc := showBookingDoc{
		ID:      ShowBookingKey(userID, showID),
		Seats:   b.Seats,
		Date:    b.Date,
		Time:    b.Time,
		ShowID:  b.ShowID,
		Title:   b.Title,
		Version: b.Version + 1,
	}

	if b.Version == 0 {
		_, err := s.coll.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			observability.VersionConflicts.Inc()
			return domain.ErrVersionConflict
		}
		if err != nil {
			s.logger.WithError(err).Error("failed to insert show booking")
		}
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": b.Version}, doc)
	if err != nil {
		s.logger.WithError(err).Error("failed to replace show booking")
		return err
	}
	if res.MatchedCount == 0 {
		observability.VersionConflicts.Inc()
		return domain.ErrVersionConflict
	}
	return nil
}

type HistoryStore struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewHistoryStore(db *mongo.Database, logger observability.Logger) *HistoryStore {
	return &HistoryStore{
		coll:   db.Collection(bookingsCollection),
		logger: logger,
	}
}

type historyDoc struct {
	ID       string            `bson:"_id"`
	Bookings []historyEntryDoc `bson:"bookings"`
	Version  int64             `bson:"version"`
}

type historyEntryDoc struct {
	ShowID     string   `bson:"movieId"`
	Title      string   `bson:"movieTitle"`
	Date       string   `bson:"date"`
	Time       string   `bson:"time"`
	Seats      []string `bson:"seats"`
	TotalPrice int64    `bson:"totalPrice"`
}

func (s *HistoryStore) Get(ctx context.Context, userID string) (*domain.History, error) {
	var doc historyDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to get booking history")
		return nil, err
	}

	h := &domain.History{Version: doc.Version}
	for _, e := range doc.Bookings {
		h.Bookings = append(h.Bookings, domain.HistoryEntry{
			ShowID:     e.ShowID,
			Title:      e.Title,
			Date:       e.Date,
			Time:       e.Time,
			Seats:      e.Seats,
			TotalPrice: e.TotalPrice,
		})
	}
	return h, nil
}

func (s *HistoryStore) Put(ctx context.Context, userID string, h *domain.History) error {
	doc := historyDoc{
		ID:      userID,
		Version: h.Version + 1,
	}
	for _, e := range h.Bookings {
		doc.Bookings = append(doc.Bookings, historyEntryDoc{
			ShowID:     e.ShowID,
			Title:      e.Title,
			Date:       e.Date,
			Time:       e.Time,
			Seats:      e.Seats,
			TotalPrice: e.TotalPrice,
		})
	}

	if h.Version == 0 {
		_, err := s.coll.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			observability.VersionConflicts.Inc()
			return domain.ErrVersionConflict
		}
		if err != nil {
			s.logger.WithError(err).Error("failed to insert booking history")
		}
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": userID, "version": h.Version}, doc)
	if err != nil {
		s.logger.WithError(err).Error("failed to replace booking history")
		return err
	}
	if res.MatchedCount == 0 {
		observability.VersionConflicts.Inc()
		return domain.ErrVersionConflict
	}
	return nil
}
