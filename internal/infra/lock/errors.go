package lock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда ключ занят дольше времени ожидания
	ErrLockNotAcquired = errors.New("lock: not acquired")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
