package cache

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrKeyNotFound is returned when a key is missing or expired
var ErrKeyNotFound = errors.New("key not found")

// cleanupInterval is how often expired items are purged
const cleanupInterval = 5 * time.Minute

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	clock clock.Clock
	done  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      []byte
	expireTime time.Time // zero means no expiry
}

func (it *memoryItem) expired(now time.Time) bool {
	return !it.expireTime.IsZero() && now.After(it.expireTime)
}

// NewMemoryStore creates a new in-memory store. A nil clock uses wall time.
func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.New()
	}
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		clock: clk,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Get retrieves a copy of the value stored under key
func (ms *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || item.expired(ms.clock.Now()) {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), item.value...), nil
}

// SetNX stores value only if key is absent and reports whether it did
func (ms *MemoryStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.clock.Now()
	if item, exists := ms.items[key]; exists && !item.expired(now) {
		return false, nil
	}
	ms.items[key] = ms.newItem(value, ttl, now)
	return true, nil
}

// Update replaces the value under key with fn(current) while holding the
// write lock, so concurrent updates of one key never interleave.
func (ms *MemoryStore) Update(_ context.Context, key string, ttl time.Duration, fn func([]byte) ([]byte, error)) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.clock.Now()
	item, exists := ms.items[key]
	if !exists || item.expired(now) {
		return ErrKeyNotFound
	}

	next, err := fn(append([]byte(nil), item.value...))
	if err != nil {
		return err
	}
	ms.items[key] = ms.newItem(next, ttl, now)
	return nil
}

// Keys returns the live keys starting with prefix in lexical order
func (ms *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	now := ms.clock.Now()
	keys := make([]string, 0, len(ms.items))
	for key, item := range ms.items {
		if strings.HasPrefix(key, prefix) && !item.expired(now) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() error {
	ms.once.Do(func() { close(ms.done) })
	return nil
}

func (ms *MemoryStore) newItem(value []byte, ttl time.Duration, now time.Time) *memoryItem {
	item := &memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expireTime = now.Add(ttl)
	}
	return item
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := ms.clock.Ticker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := ms.clock.Now()
			for key, item := range ms.items {
				if item.expired(now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
