// Package mongodb implements the domain repositories over MongoDB.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	pkgmetrics "github.com/mes-platform/production-tracker/pkg/metrics"
	pkgmongo "github.com/mes-platform/production-tracker/pkg/mongodb"
)

// Collection names.
const (
	CollectionOrders       = "orders"
	CollectionBarcodes     = "barcodes"
	CollectionStageRecords = "stage_records"
	CollectionUsers        = "users"
	CollectionLogins       = "logins"
)

const indexTimeout = 10 * time.Second

// Deps carries the optional instrumentation shared by all repositories.
type Deps struct {
	Breaker *pkgmongo.Breaker
	Metrics *pkgmetrics.Metrics
}

type base struct {
	collection *mongo.Collection
	deps       Deps
}

// execute runs a database operation through the circuit breaker and records
// operation metrics.
func (b *base) execute(operation string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()

	var (
		result interface{}
		err    error
	)
	if b.deps.Breaker != nil {
		result, err = b.deps.Breaker.Execute(fn)
	} else {
		result, err = fn()
	}

	if b.deps.Metrics != nil {
		b.deps.Metrics.RecordMongoOperation(operation, b.collection.Name(), time.Since(start), err)
	}
	return result, err
}

func indexContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), indexTimeout)
}
