package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCache — in-memory кеш с TTL и фоновой очисткой.
type MemoryCache struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache создаёт кеш и запускает очистку с заданным интервалом.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	mc := &MemoryCache{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	go mc.cleanup(cleanupInterval)

	return mc
}

// Get возвращает значение, если оно не истекло.
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	entry, exists := mc.cache[key]
	if !exists {
		return nil, false, nil
	}

	// Истёкшие записи удаляет cleanup
	if mc.now().After(entry.expiresAt) {
		return nil, false, nil
	}

	return entry.data, true, nil
}

// Set сохраняет значение с TTL.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: mc.now().Add(ttl),
	}
	return nil
}

// Delete удаляет ключ.
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.cache, key)
	return nil
}

// InvalidateByPrefix удаляет все ключи с префиксом.
func (mc *MemoryCache) InvalidateByPrefix(prefix string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for key := range mc.cache {
		if strings.HasPrefix(key, prefix) {
			delete(mc.cache, key)
		}
	}
}

// Close останавливает фоновую очистку.
func (mc *MemoryCache) Close() error {
	mc.stopOnce.Do(func() { close(mc.stop) })
	<-mc.done
	return nil
}

func (mc *MemoryCache) cleanup(interval time.Duration) {
	defer close(mc.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.removeExpired()
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	for key, entry := range mc.cache {
		if now.After(entry.expiresAt) {
			delete(mc.cache, key)
		}
	}
}
