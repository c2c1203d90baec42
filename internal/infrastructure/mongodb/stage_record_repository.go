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

// StageRecordRepository persists the append-only stage record log.
type StageRecordRepository struct {
	base
}

// NewStageRecordRepository creates the repository and ensures its indexes.
// The unique compound index on (barcodeNumber, stage) is what makes the
// exclusivity invariant hold under concurrent inserts.
func NewStageRecordRepository(db *mongo.Database, deps Deps) (*StageRecordRepository, error) {
	repo := &StageRecordRepository{base{collection: db.Collection(CollectionStageRecords), deps: deps}}

	ctx, cancel := indexContext()
	defer cancel()

	_, err := repo.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "barcodeNumber", Value: 1}, {Key: "stage", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "orderNumber", Value: 1}, {Key: "stage", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating stage record indexes: %w", err)
	}
	return repo, nil
}

// InsertIfAbsent commits the record with a single insert. The unique index
// turns a concurrent duplicate into a key violation, which maps to
// AlreadyInStageError; there is no read-then-write window.
func (r *StageRecordRepository) InsertIfAbsent(ctx context.Context, record *domain.StageRecord) error {
	_, err := r.execute("insert_one", func() (interface{}, error) {
		return r.collection.InsertOne(ctx, record)
	})
	if mongo.IsDuplicateKeyError(err) {
		return &domain.AlreadyInStageError{BarcodeNumber: record.BarcodeNumber, Stage: record.Stage}
	}
	if err != nil {
		return fmt.Errorf("inserting stage record: %w", err)
	}
	return nil
}

// FindByBarcodeAndStage fetches the record of one unit at one stage.
func (r *StageRecordRepository) FindByBarcodeAndStage(ctx context.Context, barcodeNumber string, stage domain.Stage) (*domain.StageRecord, error) {
	result, err := r.execute("find_one", func() (interface{}, error) {
		var record domain.StageRecord
		err := r.collection.FindOne(ctx, bson.M{"barcodeNumber": barcodeNumber, "stage": stage}).Decode(&record)
		return &record, err
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding stage record %s/%s: %w", barcodeNumber, stage, err)
	}
	return result.(*domain.StageRecord), nil
}

// FindByBarcode returns a unit's records in pipeline order.
func (r *StageRecordRepository) FindByBarcode(ctx context.Context, barcodeNumber string) ([]*domain.StageRecord, error) {
	return r.find(ctx, bson.M{"barcodeNumber": barcodeNumber})
}

// FindByOrder returns every record for an order's units.
func (r *StageRecordRepository) FindByOrder(ctx context.Context, orderNumber string) ([]*domain.StageRecord, error) {
	return r.find(ctx, bson.M{"orderNumber": orderNumber})
}

func (r *StageRecordRepository) find(ctx context.Context, filter bson.M) ([]*domain.StageRecord, error) {
	result, err := r.execute("find", func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, filter,
			pkgmongo.SortAsc("stage", "barcodeNumber"))
		if err != nil {
			return nil, err
		}
		var records []*domain.StageRecord
		if err := cursor.All(ctx, &records); err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing stage records: %w", err)
	}
	return result.([]*domain.StageRecord), nil
}
