package session

import (
	"context"
	"testing"
	"time"

	"github.com/daschober/planesketch/pkg/scene"
)

func testScene() scene.Scene {
	return scene.New(&scene.Point{Meta: scene.Meta{ID: "p"}, X: 1, Y: 2, Free: true})
}

func TestNewSession(t *testing.T) {
	sess := New(testScene(), time.Hour)
	if sess.ID == "" {
		t.Error("session has no id")
	}
	if sess.IsExpired() {
		t.Error("fresh session already expired")
	}
	if sess.Scene.Len() != 1 {
		t.Errorf("scene length = %d, want 1", sess.Scene.Len())
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(testScene(), time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("stored session not found")
	}
	if got.ID != sess.ID || got.Scene.Len() != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	got, err := NewMemoryStore().Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(testScene(), -time.Minute) // already expired
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expired session returned")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(testScene(), time.Hour)
	store.Set(ctx, sess)
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("deleted session still present")
	}
	// Deleting again is a no-op.
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	live := New(testScene(), time.Hour)
	dead := New(testScene(), -time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("live session removed by cleanup")
	}
	if len(store.sessions) != 1 {
		t.Errorf("store has %d sessions after cleanup, want 1", len(store.sessions))
	}
}

func TestTouchExtendsExpiry(t *testing.T) {
	sess := New(testScene(), time.Minute)
	before := sess.ExpiresAt
	time.Sleep(time.Millisecond)
	sess.Touch(time.Hour)
	if !sess.ExpiresAt.After(before) {
		t.Error("Touch did not extend expiry")
	}
}
