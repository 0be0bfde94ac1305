package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InventoryItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"key" json:"key"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Emoji     string             `bson:"emoji,omitempty" json:"emoji,omitempty"`
	Price     int                `bson:"price,omitempty" json:"price,omitempty"`
	Available bool               `bson:"available" json:"available"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    int64              `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
