package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/production-tracker/internal/domain"
	pkgmongo "github.com/mes-platform/production-tracker/pkg/mongodb"
)

// OrderRepository persists orders in the orders collection.
type OrderRepository struct {
	base
}

// NewOrderRepository creates the repository and ensures its indexes.
func NewOrderRepository(db *mongo.Database, deps Deps) (*OrderRepository, error) {
	repo := &OrderRepository{base{collection: db.Collection(CollectionOrders), deps: deps}}

	ctx, cancel := indexContext()
	defer cancel()

	_, err := repo.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customer", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating order indexes: %w", err)
	}
	return repo, nil
}

// Save inserts a new order. A duplicate order number maps to ErrOrderExists.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	_, err := r.execute("insert_one", func() (interface{}, error) {
		return r.collection.InsertOne(ctx, order)
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrOrderExists
	}
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// FindByNumber fetches an order by its canonical number.
func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	result, err := r.execute("find_one", func() (interface{}, error) {
		var order domain.Order
		err := r.collection.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
		return &order, err
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding order %s: %w", orderNumber, err)
	}
	return result.(*domain.Order), nil
}

// FindAll returns all orders, newest first.
func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	result, err := r.execute("find", func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, bson.M{}, pkgmongo.SortDesc("createdAt"))
		if err != nil {
			return nil, err
		}
		var orders []*domain.Order
		if err := cursor.All(ctx, &orders); err != nil {
			return nil, err
		}
		return orders, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return result.([]*domain.Order), nil
}
