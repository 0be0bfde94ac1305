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
	"samsariya/internal/errors"
)

type MongoOrderRepository struct {
	orders *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{orders: db.Collection("orders")}
}

func (r *MongoOrderRepository) objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	return oid, nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return nil, err
	}

	var order domain.Order
	err = r.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	order.Normalize()
	return &order, nil
}

// FindNew returns all orders still in status "new", newest first.
func (r *MongoOrderRepository) FindNew(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orders.Find(ctx, bson.M{"status": domain.StatusNew}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying new orders: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

// FindCreatedBetween returns orders created inside [start, end), newest first.
func (r *MongoOrderRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying orders by period: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoOrderRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Order, error) {
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var order domain.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, fmt.Errorf("decoding order: %w", err)
		}
		order.Normalize()
		orders = append(orders, &order)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status and bumps updated_at in one atomic update.
// It reports false when the stored document did not actually change, which
// is how a concurrent transition on the same order is detected.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return false, err
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, fmt.Errorf("updating order status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// SetClientMessageID records the handle of the customer-facing message so
// later status changes can edit it in place.
func (r *MongoOrderRepository) SetClientMessageID(ctx context.Context, id string, messageID int) (bool, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return false, err
	}

	update := bson.M{"$set": bson.M{"client_message_id": messageID}}
	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, fmt.Errorf("updating order message id: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// MarkSheetSynced flips the synced flag. The filter excludes already-synced
// documents, so a true result means this caller won the claim.
func (r *MongoOrderRepository) MarkSheetSynced(ctx context.Context, id string) (bool, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": oid, "sheet_synced": bson.M{"$ne": true}}
	result, err := r.orders.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"sheet_synced": true}})
	if err != nil {
		return false, fmt.Errorf("marking order sheet-synced: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// Insert stores a new order. Orders are normally created by the client bot;
// this exists for tooling and tests.
func (r *MongoOrderRepository) Insert(ctx context.Context, order *domain.Order) (string, error) {
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = domain.StatusNew
	}

	result, err := r.orders.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("inserting order: unexpected inserted id type %T", result.InsertedID)
	}
	order.ID = oid
	return oid.Hex(), nil
}
