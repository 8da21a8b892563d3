// server/internal/store/collection.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the minimal per-entity store contract: getAll, getById,
// create, update (shallow merge) and delete, keyed by a business id field
// rather than Mongo's _id. getAll includes soft-deleted records; callers
// filter by the active flag.
type Collection struct {
	coll     *mongo.Collection
	keyField string
}

func NewCollection(db *mongo.Database, name, keyField string) *Collection {
	return &Collection{coll: db.Collection(name), keyField: keyField}
}

func (c *Collection) GetAll(ctx context.Context, out interface{}) error {
	cursor, err := c.coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// GetByID decodes the record into out. Returns mongo.ErrNoDocuments when
// the id does not resolve.
func (c *Collection) GetByID(ctx context.Context, id string, out interface{}) error {
	return c.coll.FindOne(ctx, bson.M{c.keyField: id}).Decode(out)
}

func (c *Collection) Create(ctx context.Context, doc interface{}) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

// Update shallow-merges the given fields into the stored record. The last
// writer wins; there is no optimistic-concurrency check.
func (c *Collection) Update(ctx context.Context, id string, fields bson.M) error {
	_, err := c.coll.UpdateOne(ctx, bson.M{c.keyField: id}, bson.M{"$set": fields})
	return err
}

// Delete removes the record physically. Only Materials and Users use this;
// Loads, Clients and Carriers soft-delete via Update(id, {active: false}).
func (c *Collection) Delete(ctx context.Context, id string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{c.keyField: id})
	return err
}

func (c *Collection) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return c.coll.CountDocuments(ctx, filter)
}
