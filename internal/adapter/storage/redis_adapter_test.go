package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRemaining_Roundtrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, remainingKey(1, 0))

	// Miss before the mirror is written
	_, ok, err := adapter.Remaining(ctx, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected cache miss")
	}

	if err := adapter.SetRemaining(ctx, 1, 0, 60); err != nil {
		t.Fatalf("set remaining failed: %v", err)
	}

	remaining, ok, err := adapter.Remaining(ctx, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || remaining != 60 {
		t.Errorf("expected 60, got %d (ok=%v)", remaining, ok)
	}

	// Mirror overwrite after a reduction
	if err := adapter.SetRemaining(ctx, 1, 0, 10); err != nil {
		t.Fatalf("set remaining failed: %v", err)
	}
	remaining, _, _ = adapter.Remaining(ctx, 1, 0)
	if remaining != 10 {
		t.Errorf("expected 10, got %d", remaining)
	}
}

func TestSetIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	key := "buy:test-request"
	client.Del(ctx, key)

	ok, err := adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first set to succeed")
	}

	ok, err = adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second set to report existing key")
	}
}
