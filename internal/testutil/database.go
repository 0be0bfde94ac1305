package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const testDatabase = "samsariya_test"

// SetupTestDB connects to the test MongoDB instance, skipping the test when
// none is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping integration test, cannot connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("skipping integration test, mongodb not available: %v", err)
	}

	t.Cleanup(func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	})

	return client.Database(testDatabase)
}

// CleanupTestDB drops the collections a test may have touched.
func CleanupTestDB(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, name := range []string{"orders", "inventory", "availability", "admins"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			t.Logf("dropping collection %s: %v", name, err)
		}
	}
}
