// server/internal/store/load_store.go
package store

import (
	"context"

	"gesla-logistics-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadStore is the Mongo implementation of the load engine's Store
// interface (internal/loads).
type LoadStore struct {
	coll *mongo.Collection
}

func NewLoadStore(db *mongo.Database) *LoadStore {
	return &LoadStore{coll: db.Collection("loads")}
}

func (s *LoadStore) GetAll(ctx context.Context) ([]models.Load, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var loads []models.Load
	if err = cursor.All(ctx, &loads); err != nil {
		return nil, err
	}
	if loads == nil {
		loads = []models.Load{}
	}
	return loads, nil
}

// GetByID returns (nil, nil) when the id does not resolve; the engine
// treats that as a silent no-op or a typed not-found, not a store error.
func (s *LoadStore) GetByID(ctx context.Context, id string) (*models.Load, error) {
	var load models.Load
	err := s.coll.FindOne(ctx, bson.M{"loadID": id}).Decode(&load)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &load, nil
}

func (s *LoadStore) Create(ctx context.Context, load *models.Load) error {
	result, err := s.coll.InsertOne(ctx, load)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		load.ID = oid
	}
	return nil
}

func (s *LoadStore) Update(ctx context.Context, id string, load *models.Load) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"loadID": id}, load)
	return err
}

func (s *LoadStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
