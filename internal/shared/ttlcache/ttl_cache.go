// Package ttlcache はプロセス内のキー付きキャッシュを提供します。
// 鮮度は読み出し側が時間窓を渡して判定し、期限切れのエントリも削除せずに保持します。
package ttlcache

import (
	"sync"
	"time"
)

// Entry はキャッシュされた値と取得時刻の組です。
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// Cache is a keyed map of entries safe for concurrent use.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	now     func() time.Time
}

// New は now を時刻源とする空のキャッシュを作成します。now が nil の場合は time.Now を使います。
func New[V any](now func() time.Time) *Cache[V] {
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{entries: make(map[string]Entry[V]), now: now}
}

// Put は現在時刻を取得時刻として値を保存します。既存のエントリは置き換えます。
func (c *Cache[V]) Put(key string, v V) {
	c.PutAt(key, v, c.now())
}

// PutAt は任意の取得時刻で値を保存します。永続化層から復元した値に元の取得時刻を残すために使います。
func (c *Cache[V]) PutAt(key string, v V, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry[V]{Value: v, FetchedAt: fetchedAt}
}

// Get returns the entry for key regardless of its age.
func (c *Cache[V]) Get(key string) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// GetFresh は window 内に取得されたエントリだけを返します。
func (c *Cache[V]) GetFresh(key string, window time.Duration) (V, bool) {
	e, ok := c.Get(key)
	if !ok || !c.IsValid(e.FetchedAt, window) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// IsValid は fetchedAt から window 未満しか経過していなければ true を返します。
func (c *Cache[V]) IsValid(fetchedAt time.Time, window time.Duration) bool {
	return c.now().Sub(fetchedAt) < window
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
