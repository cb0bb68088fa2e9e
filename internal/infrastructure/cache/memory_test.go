package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dealscope/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	t.Run("stores and retrieves a value", func(t *testing.T) {
		err := cache.Set(ctx, "key-1", "value-1", time.Minute)
		if err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "key-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "value-1" {
			t.Errorf("Get() = %v, want value-1", got)
		}
	})

	t.Run("preserves pointer identity", func(t *testing.T) {
		comparison := &domain.Comparison{
			Anchor: domain.Listing{Title: "Dell Inspiron 15 3520", Price: 50000},
		}
		if err := cache.Set(ctx, "key-2", comparison, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "key-2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != comparison {
			t.Error("cached value should be the same pointer that was stored")
		}
	})

	t.Run("misses on unknown key", func(t *testing.T) {
		_, err := cache.Get(ctx, "never-set")
		if err != domain.ErrCacheMiss {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("misses after expiration", func(t *testing.T) {
		if err := cache.Set(ctx, "short-lived", "x", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		_, err := cache.Get(ctx, "short-lived")
		if err != domain.ErrCacheMiss {
			t.Errorf("Get() error = %v, want ErrCacheMiss after expiry", err)
		}
	})

	t.Run("overwrites existing key", func(t *testing.T) {
		cache.Set(ctx, "key-3", "old", time.Minute)
		cache.Set(ctx, "key-3", "new", time.Minute)

		got, _ := cache.Get(ctx, "key-3")
		if got != "new" {
			t.Errorf("Get() = %v, want new", got)
		}
	})
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "doomed", "value", time.Minute)
	if err := cache.Delete(ctx, "doomed"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := cache.Get(ctx, "doomed")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss after delete", err)
	}

	// Deleting a missing key is a no-op
	if err := cache.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete() on missing key error = %v, want nil", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "present", "value", time.Minute)
	cache.Set(ctx, "expired", "value", time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"existing key", "present", true},
		{"expired key", "expired", false},
		{"unknown key", "absent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.Exists(ctx, tt.key)
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cache.Set(ctx, fmt.Sprintf("key-%d", i), i, time.Minute)
	}

	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() after Clear = %d, want 0", size)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			cache.Set(ctx, key, i, time.Minute)
			cache.Get(ctx, key)
			cache.Exists(ctx, key)
		}(i)
	}
	wg.Wait()

	if size := cache.Size(); size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}
