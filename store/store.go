// Package store implements the concurrent in-memory key/value backend that
// commands execute against: a top-level key→frame table (kv) and a
// key→(field→frame) hash-of-hashes table (hkv).
package store

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/harfangapps/respkv-server/resp"
)

// shardCount is the number of independently-locked stripes the store is
// split into. Keys are routed to a shard by hashing, so unrelated keys
// rarely contend for the same lock; it is a power of two purely so the
// shard-selection mask is a cheap bitwise AND.
const shardCount = 32

// Store is the concurrent-safe backend shared by every connection handler.
// It is safe for use by any number of goroutines without external locking.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu   sync.RWMutex
	kv   map[string]resp.Frame
	hkv  map[string]*hashTable
}

// hashTable is one inner hash (the value of an hkv entry). It has its own
// lock so that field writes on one outer key never block readers or
// writers operating on a different outer key in the same shard.
type hashTable struct {
	mu     sync.RWMutex
	fields map[string]resp.Frame
	order  []string // insertion order, for HGETALL
}

// New returns an empty Store, ready for concurrent use.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].kv = make(map[string]resp.Frame)
		s.shards[i].hkv = make(map[string]*hashTable)
	}
	return s
}

func (s *Store) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return &s.shards[h&(shardCount-1)]
}

// Get returns the frame stored at key, or ok=false if no value is set
// there.
func (s *Store) Get(key string) (f resp.Frame, ok bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	f, ok = sh.kv[key]
	return f, ok
}

// Set unconditionally overwrites the frame stored at key.
func (s *Store) Set(key string, f resp.Frame) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.kv[key] = f
}

// HGet returns the frame stored at (key, field), or ok=false if the outer
// key or the field is absent.
func (s *Store) HGet(key, field string) (f resp.Frame, ok bool) {
	ht := s.lookupHash(key)
	if ht == nil {
		return resp.Frame{}, false
	}
	ht.mu.RLock()
	defer ht.mu.RUnlock()
	f, ok = ht.fields[field]
	return f, ok
}

// HSet stores f at (key, field), creating the inner hash on first use. The
// creation of the inner hash is atomic: concurrent HSets on a previously
// unseen key never race to install two different inner hashes for it.
func (s *Store) HSet(key, field string, f resp.Frame) {
	ht := s.getOrCreateHash(key)
	ht.mu.Lock()
	defer ht.mu.Unlock()
	if _, exists := ht.fields[field]; !exists {
		ht.order = append(ht.order, field)
	}
	ht.fields[field] = f
}

// FieldValue pairs a hash field name with its stored frame, used by
// HGetAll to report results in insertion order.
type FieldValue struct {
	Field string
	Value resp.Frame
}

// HGetAll returns every (field, value) pair stored at key, in the order
// fields were first set, or ok=false if key is absent.
func (s *Store) HGetAll(key string) (entries []FieldValue, ok bool) {
	ht := s.lookupHash(key)
	if ht == nil {
		return nil, false
	}
	ht.mu.RLock()
	defer ht.mu.RUnlock()
	entries = make([]FieldValue, len(ht.order))
	for i, field := range ht.order {
		entries[i] = FieldValue{Field: field, Value: ht.fields[field]}
	}
	return entries, true
}

// HMGet returns, for each requested field, the stored frame, or a Null frame
// if that field is not set. If key itself is absent, it returns ok=false and
// no values.
func (s *Store) HMGet(key string, fields []string) (values []resp.Frame, ok bool) {
	ht := s.lookupHash(key)
	if ht == nil {
		return nil, false
	}
	ht.mu.RLock()
	defer ht.mu.RUnlock()
	values = make([]resp.Frame, len(fields))
	for i, field := range fields {
		if v, exists := ht.fields[field]; exists {
			values[i] = v
		} else {
			values[i] = resp.Null()
		}
	}
	return values, true
}

func (s *Store) lookupHash(key string) *hashTable {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.hkv[key]
}

// getOrCreateHash returns the inner hash table for key, creating and
// installing an empty one under the shard's write lock if none exists yet.
func (s *Store) getOrCreateHash(key string) *hashTable {
	sh := s.shardFor(key)

	sh.mu.RLock()
	ht := sh.hkv[key]
	sh.mu.RUnlock()
	if ht != nil {
		return ht
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if ht := sh.hkv[key]; ht != nil {
		// another goroutine created it between our RUnlock and Lock
		return ht
	}
	ht = &hashTable{fields: make(map[string]resp.Frame)}
	sh.hkv[key] = ht
	return ht
}
