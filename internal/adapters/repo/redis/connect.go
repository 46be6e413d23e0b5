// Package redis keeps credit ledgers in Redis. Balances are hashes updated
// under WATCH/MULTI; history and drafts are lists of JSON records.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/fanthom/internal/domain"
)

const (
	keyPrefix      = "fanthom"
	connectTimeout = 10 * time.Second
	maxTxRetries   = 16
)

var (
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	ErrContention         = errors.New("redis balance update kept conflicting")
)

// Connect parses url and pings the server before returning the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func balanceKey(userID domain.UserID) string {
	return keyPrefix + ":credits:" + string(userID)
}

func historyKey(userID domain.UserID) string {
	return keyPrefix + ":creditHistory:" + string(userID)
}

func draftsKey(userID domain.UserID) string {
	return keyPrefix + ":drafts:" + string(userID)
}

func checkUserID(userID domain.UserID) error {
	if userID == "" {
		return fmt.Errorf("empty user id: %w", domain.ErrInvalidUserID)
	}
	return nil
}
