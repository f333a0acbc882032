// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingResource struct {
	released *int
}

func (c countingResource) Release() { *c.released++ }

func TestCacheEviction(t *testing.T) {
	cache := NewCache[string, countingResource]()
	var a, b int
	cache.Put("a", countingResource{&a})
	cache.Put("b", countingResource{&b})
	cache.Frame()
	assert.Equal(t, 2, cache.Len())

	// Only a is used in the second frame.
	_, ok := cache.Get("a")
	assert.True(t, ok)
	cache.Frame()
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	_, ok = cache.Get("b")
	assert.False(t, ok)

	// A frame without uses empties the cache.
	cache.Frame()
	assert.Equal(t, 1, a)
	assert.Zero(t, cache.Len())
}

func TestCacheReplaceAndRelease(t *testing.T) {
	cache := NewCache[int, countingResource]()
	var old, cur int
	cache.Put(1, countingResource{&old})
	cache.Frame()
	cache.Put(1, countingResource{&cur})
	assert.Equal(t, 1, old)
	assert.Panics(t, func() { cache.Put(1, countingResource{&cur}) })
	cache.Release()
	assert.Equal(t, 1, cur)
	assert.Zero(t, cache.Len())
}

func BenchmarkCache(b *testing.B) {
	offset := 0
	const N = 100

	cache := NewCache[int, nullResource]()
	for i := 0; i < b.N; i++ {
		// half are the same and half updated
		for k := 0; k < N; k++ {
			if _, ok := cache.Get(offset + k); !ok {
				cache.Put(offset+k, nullResource{})
			}
		}
		cache.Frame()
		offset += N / 2
	}
}

type nullResource struct{}

func (nullResource) Release() {}
