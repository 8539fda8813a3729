package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harfangapps/respkv-server/resp"
)

func TestGetAbsent(t *testing.T) {
	s := New()
	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	s := New()
	v := resp.BulkString([]byte("world"))
	s.Set("hello", v)

	got, ok := s.Get("hello")
	require.True(t, ok)
	assert.True(t, got.Equal(v))
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	s.Set("k", resp.Integer(1))
	s.Set("k", resp.Integer(2))

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.True(t, got.Equal(resp.Integer(2)))
}

func TestHSetThenHGet(t *testing.T) {
	s := New()
	s.HSet("map", "a", resp.BulkString([]byte("1")))

	got, ok := s.HGet("map", "a")
	require.True(t, ok)
	assert.True(t, got.Equal(resp.BulkString([]byte("1"))))

	_, ok = s.HGet("map", "missing-field")
	assert.False(t, ok)
}

func TestHGetAbsentKey(t *testing.T) {
	s := New()
	_, ok := s.HGet("nope", "a")
	assert.False(t, ok)
}

func TestHGetAllPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.HSet("map", "a", resp.BulkString([]byte("1")))
	s.HSet("map", "b", resp.BulkString([]byte("2")))
	s.HSet("map", "a", resp.BulkString([]byte("11"))) // overwrite, should not move "a"

	entries, ok := s.HGetAll("map")
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Field)
	assert.Equal(t, "b", entries[1].Field)
	assert.True(t, entries[0].Value.Equal(resp.BulkString([]byte("11"))))
}

func TestHGetAllAbsentKey(t *testing.T) {
	s := New()
	_, ok := s.HGetAll("nope")
	assert.False(t, ok)
}

func TestHMGetAlignment(t *testing.T) {
	s := New()
	s.HSet("map", "a", resp.BulkString([]byte("1")))

	values, ok := s.HMGet("map", []string{"a", "z"})
	require.True(t, ok)
	require.Len(t, values, 2)
	assert.True(t, values[0].Equal(resp.BulkString([]byte("1"))))
	assert.True(t, values[1].IsNull())
}

func TestHMGetAbsentKeyReturnsNotOK(t *testing.T) {
	s := New()
	_, ok := s.HMGet("nope", []string{"a", "b"})
	assert.False(t, ok)
}

// TestConcurrentDisjointKeys drives many goroutines each writing and
// re-reading their own disjoint key, to catch data races (run with -race)
// and ensure every write is observable by a subsequent read on any
// goroutine.
func TestConcurrentDisjointKeys(t *testing.T) {
	s := New()
	const goroutines = 100
	const iterations = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			key := keyFor(g)
			for i := 0; i < iterations; i++ {
				s.Set(key, resp.Integer(int64(i)))
				got, ok := s.Get(key)
				require.True(t, ok)
				assert.True(t, got.Int() == int64(i))
			}
		}(g)
	}
	wg.Wait()

	for g := 0; g < goroutines; g++ {
		got, ok := s.Get(keyFor(g))
		require.True(t, ok)
		assert.Equal(t, int64(iterations-1), got.Int())
	}
}

func TestConcurrentHSetSameKeyDifferentFields(t *testing.T) {
	s := New()
	const goroutines = 64

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			s.HSet("shared", keyFor(g), resp.Integer(int64(g)))
		}(g)
	}
	wg.Wait()

	entries, ok := s.HGetAll("shared")
	require.True(t, ok)
	assert.Len(t, entries, goroutines)
}

func keyFor(i int) string {
	return fmt.Sprintf("key-%d", i)
}
