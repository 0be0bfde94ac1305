package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samsariya/internal/domain"
)

// availabilityDocID names the single shared document that holds the
// item-key → enabled map.
const availabilityDocID = "availability"

type MongoInventoryRepository struct {
	inventory    *mongo.Collection
	availability *mongo.Collection
}

func NewMongoInventoryRepository(db *mongo.Database) *MongoInventoryRepository {
	return &MongoInventoryRepository{
		inventory:    db.Collection("inventory"),
		availability: db.Collection("availability"),
	}
}

// Keys returns all catalog item keys sorted ascending.
func (r *MongoInventoryRepository) Keys(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"key": 1}).
		SetSort(bson.D{{Key: "key", Value: 1}})
	cursor, err := r.inventory.Find(ctx, bson.M{"key": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying inventory keys: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var doc struct {
			Key string `bson:"key"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding inventory key: %w", err)
		}
		if doc.Key != "" {
			keys = append(keys, doc.Key)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory keys: %w", err)
	}
	return keys, nil
}

func (r *MongoInventoryRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	count, err := r.inventory.CountDocuments(ctx, bson.M{"key": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("counting inventory key: %w", err)
	}
	return count > 0, nil
}

// Items returns catalog documents that match the admin-bot schema. Documents
// written by the client bot with a different shape are skipped.
func (r *MongoInventoryRepository) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}})
	cursor, err := r.inventory.Find(ctx, bson.M{"key": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.InventoryItem
	for cursor.Next(ctx) {
		var item domain.InventoryItem
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory: %w", err)
	}
	return items, nil
}

func (r *MongoInventoryRepository) Insert(ctx context.Context, item *domain.InventoryItem) (string, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	result, err := r.inventory.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("inserting inventory item: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("inserting inventory item: unexpected inserted id type %T", result.InsertedID)
	}
	item.ID = oid
	return oid.Hex(), nil
}

func (r *MongoInventoryRepository) Remove(ctx context.Context, key string) (bool, error) {
	result, err := r.inventory.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return false, fmt.Errorf("removing inventory item: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// Availability loads the shared availability map. Older documents nest the
// map under an "items" field; both shapes are read.
func (r *MongoInventoryRepository) Availability(ctx context.Context) (map[string]bool, error) {
	var doc bson.M
	err := r.availability.FindOne(ctx, bson.M{"_id": availabilityDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying availability: %w", err)
	}

	if nested, ok := doc["items"].(bson.M); ok {
		doc = nested
	}

	result := make(map[string]bool, len(doc))
	for key, value := range doc {
		if key == "_id" || key == "items" {
			continue
		}
		if enabled, ok := value.(bool); ok {
			result[key] = enabled
		}
	}
	return result, nil
}

// SetAvailability is a targeted single-field update on the shared document,
// never a full rewrite.
func (r *MongoInventoryRepository) SetAvailability(ctx context.Context, key string, enabled bool) (bool, error) {
	result, err := r.availability.UpdateOne(
		ctx,
		bson.M{"_id": availabilityDocID},
		bson.M{"$set": bson.M{key: enabled}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("updating availability: %w", err)
	}
	return result.ModifiedCount > 0 || result.UpsertedCount > 0, nil
}

// SeedAvailability merges every catalog key into the shared document,
// defaulting missing entries to enabled.
func (r *MongoInventoryRepository) SeedAvailability(ctx context.Context) error {
	existing, err := r.Availability(ctx)
	if err != nil {
		return err
	}

	keys, err := r.Keys(ctx)
	if err != nil {
		return err
	}

	updates := bson.M{}
	for _, key := range keys {
		if _, ok := existing[key]; !ok {
			updates[key] = true
		}
	}
	if len(updates) == 0 {
		return nil
	}

	_, err = r.availability.UpdateOne(
		ctx,
		bson.M{"_id": availabilityDocID},
		bson.M{"$set": updates},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seeding availability: %w", err)
	}
	return nil
}
