package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samsariya/internal/domain"
)

type MongoAdminRepository struct {
	admins *mongo.Collection
}

func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{admins: db.Collection("admins")}
}

func (r *MongoAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	count, err := r.admins.CountDocuments(ctx, bson.M{"user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return count > 0, nil
}

func (r *MongoAdminRepository) FindAll(ctx context.Context) ([]domain.Admin, error) {
	cursor, err := r.admins.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("querying admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []domain.Admin
	for cursor.Next(ctx) {
		var admin domain.Admin
		if err := cursor.Decode(&admin); err != nil {
			return nil, fmt.Errorf("decoding admin: %w", err)
		}
		admins = append(admins, admin)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating admins: %w", err)
	}
	return admins, nil
}
