package sync

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

// ShardedMutex serializes work per key (a wallet name) without a global lock.
// Keys hashing to the same shard share a lock, which is safe but may serialize
// unrelated wallets.
type ShardedMutex struct {
	shards [shardCount]sync.RWMutex
}

// NewShardedMutex creates a ShardedMutex with 32 shards.
func NewShardedMutex() *ShardedMutex {
	return &ShardedMutex{}
}

// Lock acquires the key's shard for writing.
func (m *ShardedMutex) Lock(key string) {
	m.shards[shardFor(key)].Lock()
}

// Unlock releases the key's shard write lock.
func (m *ShardedMutex) Unlock(key string) {
	m.shards[shardFor(key)].Unlock()
}

// RLock acquires the key's shard for reading.
func (m *ShardedMutex) RLock(key string) {
	m.shards[shardFor(key)].RLock()
}

// RUnlock releases the key's shard read lock.
func (m *ShardedMutex) RUnlock(key string) {
	m.shards[shardFor(key)].RUnlock()
}

// WithLock runs fn while holding the key's write lock.
func (m *ShardedMutex) WithLock(key string, fn func() error) error {
	m.Lock(key)
	defer m.Unlock(key)
	return fn()
}

func shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
