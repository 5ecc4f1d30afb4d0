package ratelimit

import (
	"context"
	"fmt"
	"time"

	"hela9_backend/internal/logger"
)

const keyNamespace = "hela9:rate_limit"

// Limiter - фиксированное окно поверх Store.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

func NewLimiter(store Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow возвращает false, если лимит в текущем окне исчерпан.
// При ошибке хранилища запрос пропускается.
func (l *Limiter) Allow(ctx context.Context, scope, id string) (bool, int64) {
	if l == nil || l.store == nil || l.limit <= 0 {
		return true, 0
	}
	key := fmt.Sprintf("%s:%s:%s", keyNamespace, scope, id)
	count, err := l.store.IncrWithTTL(ctx, key, l.window)
	if err != nil {
		logger.CtxWithError(ctx, "Rate limit store unavailable", err, "scope", scope)
		return true, count
	}
	return count <= l.limit, count
}

func (l *Limiter) Window() time.Duration {
	if l == nil {
		return 0
	}
	return l.window
}
