package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRoundTrip(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := kv.Set(ctx, "book:board", []byte(`{"version":6}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "book:board")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"version":6}`)) {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := kv.Set(ctx, "book:board", []byte(`{"version":7}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "book:board")
	if !bytes.Equal(got, []byte(`{"version":7}`)) {
		t.Fatalf("overwrite not visible: %s", got)
	}

	if err := kv.Delete(ctx, "book:board"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "book:board"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	testRoundTrip(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	src := []byte("original")
	if err := m.Set(ctx, "k", src); err != nil {
		t.Fatalf("set: %v", err)
	}
	src[0] = 'X'
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value aliases caller memory: %s", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	testRoundTrip(t, f)
}

func TestFileDeleteMissingIsNil(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := f.Delete(context.Background(), "never-set"); err != nil {
		t.Fatalf("delete of missing key should be nil, got %v", err)
	}
}

func TestRedisRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	testRoundTrip(t, NewRedis(client, 0))
}
