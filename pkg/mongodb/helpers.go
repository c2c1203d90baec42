package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortAsc returns find options sorted ascending by the given fields.
func SortAsc(fields ...string) *options.FindOptions {
	return options.Find().SetSort(sortSpec(fields, 1))
}

// SortDesc returns find options sorted descending by the given fields.
func SortDesc(fields ...string) *options.FindOptions {
	return options.Find().SetSort(sortSpec(fields, -1))
}

func sortSpec(fields []string, direction int) bson.D {
	spec := make(bson.D, len(fields))
	for i, f := range fields {
		spec[i] = bson.E{Key: f, Value: direction}
	}
	return spec
}
