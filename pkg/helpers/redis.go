package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the hash holding a logged-in user's session.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

// With a positive TTL the hash is written and its expiry reset. Otherwise
// only an existing hash is updated, which keeps its expiry. One script so the
// key cannot expire between the check and the write.
var writeSessionScript = redis.NewScript(`
local ttl = tonumber(ARGV[1])
if ttl <= 0 and redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV, 2))
if ttl > 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return 1
`)

// WriteSession merges fields into the user's session hash. A positive ttl
// resets the expiry. With ttl <= 0 only an existing session is updated and
// its expiry is kept.
func WriteSession(ctx context.Context, rdb *redis.Client, userID string, fields map[string]any, ttl time.Duration) error {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, 1+2*len(fields))
	args = append(args, ttl.Milliseconds())
	for k, v := range fields {
		args = append(args, k, v)
	}
	return writeSessionScript.Run(ctx, rdb, []string{SessionKey(userID)}, args...).Err()
}

// RedisSetJSON caches value as JSON under key.
func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisGetJSON reports false with a nil error on a cache miss.
func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}
