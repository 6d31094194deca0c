// database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lnfurey-oss/pm-exploration/config"
)

var Client *mongo.Client

func Connect() error {
	// Priority 1: Environment variable (recommended & secure)
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		// Fallback to config only if env var is not set
		mongoURI = config.MongoURI
		if mongoURI == "" {
			return fmt.Errorf("MONGODB_URI environment variable is required (or set config.MongoURI)")
		}
	}

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetSocketTimeout(20 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	// Verify actual connection with ping
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()

	if err := Client.Ping(ctxPing, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB")
	return nil
}

// Collection returns a handle in the configured journal database.
func Collection(name string) *mongo.Collection {
	return Client.Database(config.MongoDatabase).Collection(name)
}

func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}
