package cache

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/gadgetvault-backend/internal/logger"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(logger.NewNop(), time.Minute)

	if err := mc.Set(ctx, "gadget:abc", `{"name":"Grappling Hook"}`, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, ok, err := mc.Get(ctx, "gadget:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: want hit, got miss")
	}
	if val != `{"name":"Grappling Hook"}` {
		t.Fatalf("Get=%q, want cached value verbatim", val)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(logger.NewNop(), time.Minute)

	_, ok, err := mc.Get(ctx, "gadget:missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get: want miss for unknown key")
	}
}

func TestMemoryCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(logger.NewNop(), time.Minute)

	if err := mc.Set(ctx, "gadgets:all:", "[]", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Includes a key that was never set: invalidation is best effort.
	if err := mc.Invalidate(ctx, "gadgets:all:", "gadgets:Available:"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	_, ok, err := mc.Get(ctx, "gadgets:all:")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get: want miss after invalidation")
	}
}

func TestMemoryCacheSetAcceptsDivergingTTL(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(logger.NewNop(), time.Minute)

	// Per-call TTLs the cache cannot honor are logged, never rejected.
	if err := mc.Set(ctx, "gadget:short", "value", time.Second); err != nil {
		t.Fatalf("Set with diverging ttl: %v", err)
	}

	val, ok, err := mc.Get(ctx, "gadget:short")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || val != "value" {
		t.Fatalf("Get=(%q, %v), want the stored value", val, ok)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(logger.NewNop(), 30*time.Millisecond)

	if err := mc.Set(ctx, "gadget:ttl", "value", 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(120 * time.Millisecond)

	_, ok, err := mc.Get(ctx, "gadget:ttl")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get: want miss after TTL elapsed")
	}
}
