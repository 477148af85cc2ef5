// Package docstore owns the document-store boundary: client construction,
// health checks, query metrics and index migrations.
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the service.
const (
	CollectionProducts = "products"
	CollectionCarts    = "carts"
	CollectionOrders   = "orders"
	CollectionPayments = "payments"
)

// IDBatchSize is the maximum number of ids a single in-set lookup may carry;
// larger sets must be split into batches of this size.
const IDBatchSize = 10

// Connect establishes a client and verifies connectivity with a ping.
func Connect(ctx context.Context, uri string, connectTimeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return client, nil
}
