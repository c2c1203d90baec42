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

// BarcodeRepository persists unit identity documents.
type BarcodeRepository struct {
	base
}

// NewBarcodeRepository creates the repository and ensures its indexes.
func NewBarcodeRepository(db *mongo.Database, deps Deps) (*BarcodeRepository, error) {
	repo := &BarcodeRepository{base{collection: db.Collection(CollectionBarcodes), deps: deps}}

	ctx, cancel := indexContext()
	defer cancel()

	_, err := repo.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "barcodeNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "orderNumber", Value: 1}, {Key: "shoeSize", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating barcode indexes: %w", err)
	}
	return repo, nil
}

// SaveAll inserts the identity documents as one batch.
func (r *BarcodeRepository) SaveAll(ctx context.Context, barcodes []*domain.Barcode) error {
	if len(barcodes) == 0 {
		return nil
	}

	docs := make([]interface{}, len(barcodes))
	for i, b := range barcodes {
		docs[i] = b
	}

	_, err := r.execute("insert_many", func() (interface{}, error) {
		return r.collection.InsertMany(ctx, docs)
	})
	if err != nil {
		return fmt.Errorf("inserting barcodes: %w", err)
	}
	return nil
}

// FindByNumber fetches one identity document.
func (r *BarcodeRepository) FindByNumber(ctx context.Context, barcodeNumber string) (*domain.Barcode, error) {
	result, err := r.execute("find_one", func() (interface{}, error) {
		var barcode domain.Barcode
		err := r.collection.FindOne(ctx, bson.M{"barcodeNumber": barcodeNumber}).Decode(&barcode)
		return &barcode, err
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding barcode %s: %w", barcodeNumber, err)
	}
	return result.(*domain.Barcode), nil
}

// FindByOrder returns an order's identity documents in issue order.
func (r *BarcodeRepository) FindByOrder(ctx context.Context, orderNumber string) ([]*domain.Barcode, error) {
	result, err := r.execute("find", func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, bson.M{"orderNumber": orderNumber},
			pkgmongo.SortAsc("barcodeNumber"))
		if err != nil {
			return nil, err
		}
		var barcodes []*domain.Barcode
		if err := cursor.All(ctx, &barcodes); err != nil {
			return nil, err
		}
		return barcodes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing barcodes for order %s: %w", orderNumber, err)
	}
	return result.([]*domain.Barcode), nil
}
