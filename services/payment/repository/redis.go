package repository

import (
	"context"
	"fmt"

	"github.com/tomiwa/invoicepay/internal/pkg/constants"
	"github.com/tomiwa/invoicepay/internal/pkg/database"
	"github.com/tomiwa/invoicepay/services/payment"
)

// RedisDedupCache implements payment.DedupCache. It short-circuits repeat
// webhook deliveries before they reach the database; correctness never
// depends on it.
type RedisDedupCache struct {
	redisClient *database.RedisClient
}

// NewDedupCache creates a new Redis-backed dedup cache
func NewDedupCache(redisClient *database.RedisClient) payment.DedupCache {
	return &RedisDedupCache{redisClient: redisClient}
}

// IsProcessed reports whether a reference was recently reconciled
func (c *RedisDedupCache) IsProcessed(ctx context.Context, reference string) (bool, error) {
	key := fmt.Sprintf(constants.KeyProcessedReference, reference)
	return c.redisClient.Exists(ctx, key)
}

// MarkProcessed remembers a reconciled reference for the redelivery window
func (c *RedisDedupCache) MarkProcessed(ctx context.Context, reference string) error {
	key := fmt.Sprintf(constants.KeyProcessedReference, reference)
	_, err := c.redisClient.SetNX(ctx, key, "1", constants.ProcessedReferenceTTL)
	return err
}
