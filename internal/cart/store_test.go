package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/redis"
)

type fakeKV struct {
	data    map[string]string
	lastTTL time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.lastTTL = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) CartKey(userID string) string {
	return "dckt:cart:" + userID
}

func TestStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	userID := uuid.NewString()

	cart := &Cart{}
	if err := cart.AddItem(snapshot(uuid.New(), "Noodles", 1550, 10), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.Save(ctx, userID, cart); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.lastTTL != time.Hour {
		t.Fatalf("expected ttl refresh, got %v", kv.lastTTL)
	}

	loaded, err := store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 2 {
		t.Fatalf("round trip lost data: %+v", loaded.Items)
	}
}

func TestStoreLoadMissingReturnsEmptyCart(t *testing.T) {
	store, err := NewStore(newFakeKV(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	cart, err := store.Load(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart for missing key")
	}
}

func TestStoreDelete(t *testing.T) {
	kv := newFakeKV()
	store, err := NewStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	userID := uuid.NewString()

	if err := store.Save(ctx, userID, &Cart{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cart, err := store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("expected cart gone after delete")
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore(nil, time.Hour); err == nil {
		t.Fatal("expected error for nil kv")
	}
	if _, err := NewStore(newFakeKV(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
