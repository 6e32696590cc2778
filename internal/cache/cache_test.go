package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetSignedURL(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := uuid.NewUUID()
	out := &port.GetSignedURLOutput{
		URL:        "https://storage.example.com/posters/" + id.String() + ".jpg?X-Amz-Expires=900",
		ValidUntil: time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second),
	}

	// 1) Cache miss
	got, err := c.GetSignedURL(ctx, id)
	if err != nil {
		t.Fatalf("GetSignedURL miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetSignedURL miss: got %v; want nil", got)
	}

	// 2) Set + Get
	if err := c.SetSignedURL(ctx, id, out); err != nil {
		t.Fatalf("SetSignedURL: %v", err)
	}
	// TTL in Redis should track the link's remaining validity
	if ttl := mr.TTL(getCacheKey(id.String())); ttl < 14*time.Minute || ttl > 15*time.Minute+time.Second {
		t.Errorf("redis TTL = %v; want ~15m", ttl)
	}
	got, err = c.GetSignedURL(ctx, id)
	if err != nil {
		t.Fatalf("GetSignedURL hit: %v", err)
	}
	if got == nil {
		t.Fatal("GetSignedURL hit: got nil")
	}
	if got.URL != out.URL {
		t.Errorf("url = %q; want %q", got.URL, out.URL)
	}
	if !got.ValidUntil.Equal(out.ValidUntil) {
		t.Errorf("validUntil = %v; want %v", got.ValidUntil, out.ValidUntil)
	}

	// 3) Expiry behaves like a miss
	mr.FastForward(16 * time.Minute)
	got, err = c.GetSignedURL(ctx, id)
	if err != nil {
		t.Fatalf("GetSignedURL after expiry: %v", err)
	}
	if got != nil {
		t.Errorf("expired entry should be a miss, got %v", got)
	}
}

func TestGetSignedURLCorruptEntry(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := uuid.NewUUID()
	if err := mr.Set(getCacheKey(id.String()), "not json"); err != nil {
		t.Fatalf("seed redis: %v", err)
	}

	if _, err := c.GetSignedURL(ctx, id); err == nil {
		t.Fatal("expected unmarshal error for corrupt entry")
	}
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()
	id := uuid.NewUUID()

	got, err := n.GetSignedURL(ctx, id)
	if err != nil || got != nil {
		t.Errorf("noop get = (%v, %v); want (nil, nil)", got, err)
	}
	if err := n.SetSignedURL(ctx, id, &port.GetSignedURLOutput{URL: "x"}); err != nil {
		t.Errorf("noop set: %v", err)
	}
	// still a miss after set
	got, _ = n.GetSignedURL(ctx, id)
	if got != nil {
		t.Errorf("noop should never hit, got %v", got)
	}
}
