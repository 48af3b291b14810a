package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"airport-feedback/internal/logger"
)

// Store timeouts. They are fixed and not configurable. SocketTimeout bounds
// each operation through the client-side operation timeout.
const (
	ServerSelectionTimeout = 5 * time.Second
	SocketTimeout          = 45 * time.Second
	connectTimeout         = 10 * time.Second
)

// Connect opens a client, verifies it with a ping and returns the named
// database. The caller owns the client and must Disconnect it.
func Connect(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(clientOptions(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", logger.MaskConnectionString(uri), err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping %s: %w", logger.MaskConnectionString(uri), err)
	}

	logger.GetLogger().Infow("Connected to MongoDB",
		"uri", logger.MaskConnectionString(uri),
		"database", dbName)
	return client, client.Database(dbName), nil
}

func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(ServerSelectionTimeout).
		SetTimeout(SocketTimeout)
}

// Disconnect closes the client, waiting at most timeout for in-flight work.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}
