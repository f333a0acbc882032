// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
)

// Releaser is a value holding device resources, such as a *Buffer or
// a set of them.
type Releaser interface {
	Release()
}

// Cache keeps values across frames. A value not used during a frame
// is released at the end of it.
//
// A Cache is not safe for concurrent use.
type Cache[K comparable, V Releaser] struct {
	res    map[K]V
	newRes map[K]V
}

// NewCache returns an empty cache.
func NewCache[K comparable, V Releaser]() *Cache[K, V] {
	return &Cache[K, V]{
		res:    make(map[K]V),
		newRes: make(map[K]V),
	}
}

// Get returns the value of key and marks it used in the current
// frame.
func (r *Cache[K, V]) Get(key K) (V, bool) {
	v, exists := r.res[key]
	if exists {
		r.newRes[key] = v
	}
	return v, exists
}

// Put adds val under key, used in the current frame. It panics if
// key was already put or got in the current frame.
func (r *Cache[K, V]) Put(key K, val V) {
	if _, exists := r.newRes[key]; exists {
		panic(fmt.Errorf("gpu: cache key exists, %v", key))
	}
	if old, exists := r.res[key]; exists {
		old.Release()
	}
	r.res[key] = val
	r.newRes[key] = val
}

// Len returns the number of cached values.
func (r *Cache[K, V]) Len() int {
	return len(r.res)
}

// Frame ends the current frame, releasing the values that were not
// used during it.
func (r *Cache[K, V]) Frame() {
	for k, v := range r.res {
		if _, exists := r.newRes[k]; !exists {
			delete(r.res, k)
			v.Release()
		}
	}
	for k := range r.newRes {
		delete(r.newRes, k)
	}
}

// Release releases every cached value.
func (r *Cache[K, V]) Release() {
	for k, v := range r.res {
		v.Release()
		delete(r.res, k)
	}
	for k := range r.newRes {
		delete(r.newRes, k)
	}
}
