package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// MongoStore implements the Store interface on a MongoDB users collection.
// Email uniqueness is enforced with a unique index created at startup.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

// NewMongoStore connects to MongoDB and ensures the users email index.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	users := client.Database(cfg.Database).Collection("users")
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create email index: %w", err)
	}

	return &MongoStore{client: client, users: users}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var u models.UserProfile
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.UserProfile) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, user *models.UserProfile) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := s.users.UpdateOne(ctx, bson.M{"email": user.Email}, bson.M{"$set": bson.M{
		"name":              user.Name,
		"location":          user.Location,
		"phone":             user.Phone,
		"farm_size":         user.FarmSize,
		"soil_type":         user.SoilType,
		"main_crop":         user.MainCrop,
		"irrigation_source": user.IrrigationSource,
		"member_since":      user.MemberSince,
		"updated_at":        user.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
