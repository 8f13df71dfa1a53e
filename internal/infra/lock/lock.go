package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix пространство ключей блокировок в Redis
const keyPrefix = "lock:"

// retryInterval пауза между попытками взять занятый ключ
const retryInterval = 50 * time.Millisecond

// releaseScript удаляет ключ только если он все еще принадлежит нашему токену
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Unlock освобождает взятую блокировку
type Unlock func(ctx context.Context) error

// RedisLocker распределенная блокировка по ключу на SET NX PX
// Ключ освобождается явно или по истечении ttl, если процесс упал
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker создает блокировку поверх клиента Redis
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait}
}

// Acquire берет блокировку по ключу, ожидая не дольше wait
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: Acquire - key=%s: %v", ErrRedis, key, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: key=%s", ErrLockNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, key, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) Unlock {
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			return fmt.Errorf("%w: Release - key=%s: %v", ErrRedis, redisKey, err)
		}
		return nil
	}
}

// NoopLocker используется, когда распределенная блокировка выключена в конфиге
// Сериализацию в этом случае обеспечивает advisory lock в Postgres
type NoopLocker struct{}

// Acquire ничего не блокирует
func (NoopLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	return func(ctx context.Context) error { return nil }, nil
}
