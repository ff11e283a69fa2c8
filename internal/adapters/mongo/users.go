package mongo

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

type UserStore struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewUserStore(db *mongo.Database, logger observability.Logger) *UserStore {
	return &UserStore{
		coll:   db.Collection("users"),
		logger: logger,
	}
}

type userDoc struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone"`
	PasswordHash string `bson:"password_hash"`
}

// EnsureIndexes creates the unique email index login depends on.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *UserStore) Create(ctx context.Context, u domain.User) error {
	_, err := s.coll.InsertOne(ctx, userDoc{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to create user")
	}
	return err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to get user by email")
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to get user")
		return nil, err
	}
	return doc.toDomain(), nil
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
	}
}
