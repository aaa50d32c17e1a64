package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := Key("svg", []byte(`{"entities":[]}`))
	if err := c.Set(ctx, key, []byte("<svg/>"), 0); err != nil {
		t.Fatal(err)
	}

	data, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(data) != "<svg/>" {
		t.Errorf("data = %q", data)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unexpected hit")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry returned")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("deleted entry returned")
	}
	// Deleting again is a no-op.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestKeyStableAndDistinct(t *testing.T) {
	a := Key("svg", []byte("scene-a"))
	b := Key("svg", []byte("scene-b"))
	if a == b {
		t.Error("distinct content produced identical keys")
	}
	if a != Key("svg", []byte("scene-a")) {
		t.Error("key not stable")
	}
}
