package store

import "sync"

const cachePrefix = "cache:"

// keyPool provides reusable byte slices for building cache keys.
var keyPool = sync.Pool{
	New: func() any {
		// Cache keys are a short prefix plus a request key such as
		// "catalog:person:en-US:525".
		return make([]byte, 0, 128)
	},
}

// buildKey constructs a database key from prefix and suffix using a pooled buffer.
// The returned slice is valid until releaseKey is called.
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// releaseKey returns a key buffer to the pool.
func releaseKey(key []byte) {
	//nolint:staticcheck // SA6002: slices are reference types, storing value is correct
	keyPool.Put(key[:0])
}
