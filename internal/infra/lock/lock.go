// Package lock сужает окно гонки между проверкой слота и вставкой бронирования.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

var (
	// ErrLockUnavailable возвращается при ошибке обращения к Redis
	ErrLockUnavailable = errors.New("lock: redis unavailable")
)

// releaseScript удаляет ключ только если он принадлежит владельцу
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// ReleaseFunc освобождает захваченную блокировку
type ReleaseFunc func(ctx context.Context) error

// Client подмножество команд go-redis, используемых блокировкой
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// SlotLocker блокировка слота на Redis (SET NX PX)
type SlotLocker struct {
	client Client
	ttl    time.Duration
}

// NewSlotLocker создает блокировку слотов с заданным TTL
func NewSlotLocker(c Client, ttl time.Duration) *SlotLocker {
	return &SlotLocker{client: c, ttl: ttl}
}

// Key формирует ключ блокировки для даты и слота
func Key(date time.Time, slot domain.Slot) string {
	return fmt.Sprintf("slot:%s:%s", calendar.Format(date), slot)
}

// Acquire пытается захватить слот. acquired=false означает, что слот удерживает другой запрос
func (l *SlotLocker) Acquire(ctx context.Context, date time.Time, slot domain.Slot) (ReleaseFunc, bool, error) {
	key := Key(date, slot)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: acquire %s: %v", ErrLockUnavailable, key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: release %s: %v", ErrLockUnavailable, key, err)
		}
		return nil
	}

	return release, true, nil
}

// Nop блокировка для запуска без Redis: всегда успешна
type Nop struct{}

// Acquire всегда захватывает слот
func (Nop) Acquire(context.Context, time.Time, domain.Slot) (ReleaseFunc, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}
