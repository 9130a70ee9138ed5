package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo keeps one document per key in a single collection:
// {_id: <key>, value: <json text>}. The whole value is replaced on
// every Set, matching the Store contract.
type Mongo struct {
	coll *mongo.Collection
}

type kvDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func NewMongo(db *mongo.Database, collection string) *Mongo {
	return &Mongo{coll: db.Collection(collection)}
}

func (m *Mongo) Get(ctx context.Context, key string, out any) (bool, error) {
	var doc kvDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		return false, fmt.Errorf("mongo decode %s: %w", key, err)
	}
	return true, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("mongo encode %s: %w", key, err)
	}
	doc := kvDoc{Key: key, Value: string(raw)}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Remove(ctx context.Context, key string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo del %s: %w", key, err)
	}
	return nil
}
