package dao

import "strings"

// MongoFallbackKey is returned when a MongoDB violation message cannot be
// parsed.
const MongoFallbackKey = "mongo.duplicate.key"

const (
	collectionMarker = "collection: "
	indexMarker      = "index: "
)

// MongoConstraintNameResolver parses MongoDB duplicate-key messages of the
// shape "... collection: db.orders index: idx_order_id dup key: ..." into
// "orders.idx_order_id".
type MongoConstraintNameResolver struct{}

func (MongoConstraintNameResolver) DBType() DBType { return DBTypeMongo }

func (MongoConstraintNameResolver) ResolveConstraintName(exceptionMessage string) string {
	msg := strings.TrimSpace(exceptionMessage)

	start := strings.Index(msg, collectionMarker)
	if start < 0 {
		return MongoFallbackKey
	}
	rest := msg[start+len(collectionMarker):]

	end := strings.Index(rest, " "+indexMarker)
	if end < 0 {
		return MongoFallbackKey
	}
	collection := rest[:end]
	// The namespace is db-qualified; keep only the collection.
	if dot := strings.LastIndexByte(collection, '.'); dot >= 0 {
		collection = collection[dot+1:]
	}

	rest = rest[end+1+len(indexMarker):]
	space := strings.IndexByte(rest, ' ')
	if space < 0 {
		return MongoFallbackKey
	}
	index := rest[:space]

	if collection == "" || index == "" {
		return MongoFallbackKey
	}
	return collection + "." + index
}
