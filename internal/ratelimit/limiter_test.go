package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingStore struct{}

func (failingStore) IncrWithTTL(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestLimiter_FixedWindow(t *testing.T) {
	// 1. Подготовка
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	l := NewLimiter(store, 2, time.Minute)
	ctx := context.Background()

	// 2. Действие / 3. Проверка
	ok, _ := l.Allow(ctx, "login", "1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "login", "1.2.3.4")
	assert.True(t, ok)
	ok, count := l.Allow(ctx, "login", "1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, int64(3), count)

	// другой клиент считается отдельно
	ok, _ = l.Allow(ctx, "login", "5.6.7.8")
	assert.True(t, ok)

	// окно истекло
	now = now.Add(time.Minute)
	ok, count = l.Allow(ctx, "login", "1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, int64(1), count)
}

func TestLimiter_FailsOpen(t *testing.T) {
	l := NewLimiter(failingStore{}, 1, time.Minute)

	ok, _ := l.Allow(context.Background(), "signup", "x")

	assert.True(t, ok)
}

func TestLimiter_NilAndDisabled(t *testing.T) {
	var l *Limiter
	ok, _ := l.Allow(context.Background(), "any", "x")
	assert.True(t, ok)

	ok, _ = NewLimiter(NewMemoryStore(), 0, time.Minute).Allow(context.Background(), "any", "x")
	assert.True(t, ok)
}
