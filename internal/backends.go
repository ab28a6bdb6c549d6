package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rollfit/internal/streak"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/iterator"
)

type redisHealthCheck struct {
	rdb *redis.Client
}

func (c redisHealthCheck) Name() string { return "redis" }

func (c redisHealthCheck) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

type postgresHealthCheck struct {
	pool *pgxpool.Pool
}

func (c postgresHealthCheck) Name() string { return "postgres" }

func (c postgresHealthCheck) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

type firestoreHealthCheck struct {
	client *firestore.Client
}

func (c firestoreHealthCheck) Name() string { return "firestore" }

// Ping reads at most one document; an empty collection is healthy.
func (c firestoreHealthCheck) Ping(ctx context.Context) error {
	iter := c.client.Collection(streak.FirestoreCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}
