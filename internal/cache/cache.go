package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const expiration = 5 * time.Minute

var ErrBalanceNotFound = errors.New("balance not found in cache")

// BalanceCache keeps account balances in Redis with a TTL. The database stays
// the source of truth; writers refresh or drop the key after commit.
type BalanceCache struct {
	client *redis.Client
	prefix string
}

func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "account:",
	}
}

func (c *BalanceCache) SetBalance(ctx context.Context, accountID int, balance decimal.Decimal) error {
	key := c.balanceKey(accountID)

	err := c.client.Set(ctx, key, balance.String(), expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set balance in redis: %w", err)
	}
	return nil
}

func (c *BalanceCache) GetBalance(ctx context.Context, accountID int) (decimal.Decimal, error) {
	key := c.balanceKey(accountID)

	balanceStr, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return decimal.Zero, ErrBalanceNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance from redis: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance from redis: %w", err)
	}
	return balance, nil
}

func (c *BalanceCache) DeleteBalance(ctx context.Context, accountID int) error {
	key := c.balanceKey(accountID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete balance from redis: %w", err)
	}
	return nil
}

func (c *BalanceCache) balanceKey(accountID int) string {
	return c.prefix + strconv.Itoa(accountID) + ":balance"
}
