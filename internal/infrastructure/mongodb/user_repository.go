package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/production-tracker/internal/domain"
)

// UserRepository persists operator accounts and their login activity.
type UserRepository struct {
	base
	logins *mongo.Collection
}

// NewUserRepository creates the repository and ensures its indexes.
func NewUserRepository(db *mongo.Database, deps Deps) (*UserRepository, error) {
	repo := &UserRepository{
		base:   base{collection: db.Collection(CollectionUsers), deps: deps},
		logins: db.Collection(CollectionLogins),
	}

	ctx, cancel := indexContext()
	defer cancel()

	_, err := repo.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user indexes: %w", err)
	}

	_, err = repo.logins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "loginAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating login indexes: %w", err)
	}
	return repo, nil
}

// Save inserts a new user. A duplicate username maps to ErrUserExists.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	_, err := r.execute("insert_one", func() (interface{}, error) {
		return r.collection.InsertOne(ctx, user)
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// FindByUsername fetches an operator account.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	result, err := r.execute("find_one", func() (interface{}, error) {
		var user domain.User
		err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
		return &user, err
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", username, err)
	}
	return result.(*domain.User), nil
}

// RecordLogin appends a login activity document.
func (r *UserRepository) RecordLogin(ctx context.Context, activity *domain.LoginActivity) error {
	_, err := r.execute("insert_one", func() (interface{}, error) {
		return r.logins.InsertOne(ctx, activity)
	})
	if err != nil {
		return fmt.Errorf("recording login: %w", err)
	}
	return nil
}
