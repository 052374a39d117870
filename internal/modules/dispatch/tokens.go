package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "dispatch:confirm:%s"
	// tokenTTL bounds how long a soft-conflict acknowledgment stays valid.
	// After expiry the admin has to re-run the assignment.
	tokenTTL = 15 * time.Minute
)

// RedisTokenStore keeps pending confirmations in Redis with a TTL, so a
// warned-but-never-confirmed assignment cleans itself up.
type RedisTokenStore struct {
	redis *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{redis: client}
}

func (s *RedisTokenStore) Put(ctx context.Context, token string, req AssignmentRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("store confirmation token: %w", err)
	}
	return s.redis.Set(ctx, tokenKey(token), payload, tokenTTL).Err()
}

// Take fetches and deletes the token in one round trip; a token confirms at
// most one assignment.
func (s *RedisTokenStore) Take(ctx context.Context, token string) (AssignmentRequest, error) {
	val, err := s.redis.GetDel(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return AssignmentRequest{}, ErrTokenExpired
	}
	if err != nil {
		return AssignmentRequest{}, fmt.Errorf("take confirmation token: %w", err)
	}
	var req AssignmentRequest
	if err := json.Unmarshal([]byte(val), &req); err != nil {
		return AssignmentRequest{}, fmt.Errorf("take confirmation token: %w", err)
	}
	return req, nil
}

func tokenKey(token string) string {
	return fmt.Sprintf(tokenKeyPrefix, token)
}
