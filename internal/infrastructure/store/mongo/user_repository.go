// Package mongo implements the user store against a MongoDB collection, for
// deployments that outgrow the single-document file store.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// mongoUser mirrors the file-store record shape, with the username as the
// document key.
type mongoUser struct {
	Username     string                    `bson:"_id"`
	Email        string                    `bson:"email"`
	Phone        string                    `bson:"phone"`
	PasswordHash string                    `bson:"password_hash"`
	Role         string                    `bson:"role,omitempty"`
	History      []domain.PredictionRecord `bson:"history"`
}

func toDomain(mu mongoUser) *domain.User {
	history := mu.History
	if history == nil {
		history = []domain.PredictionRecord{}
	}
	return &domain.User{
		Username:     mu.Username,
		Email:        mu.Email,
		Phone:        mu.Phone,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		History:      history,
	}
}

func fromDomain(u *domain.User) mongoUser {
	return mongoUser{
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		History:      u.History,
	}
}

func (r *UserRepository) LoadAll(ctx context.Context) (map[string]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	defer cursor.Close(ctx)

	users := make(map[string]*domain.User)
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
		}
		users[mu.Username] = toDomain(mu)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	return users, nil
}

func (r *UserRepository) SaveAll(ctx context.Context, users map[string]*domain.User) error {
	for username, u := range users {
		doc := fromDomain(u)
		doc.Username = username
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": username}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("save user %q: %w", username, err)
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, fromDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(mu), nil
}

func (r *UserRepository) AppendHistory(ctx context.Context, username string, rec domain.PredictionRecord) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": username}, bson.M{"$push": bson.M{"history": rec}})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
