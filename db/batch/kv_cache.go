// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

type (
	// KVStoreCache is a local cache of batched <k, v> for fast query
	KVStoreCache interface {
		// Read retrieves a record
		Read(namespace string, key []byte) ([]byte, error)
		// Write puts a record into cache
		Write(namespace string, key, value []byte)
		// Evict marks a record as deleted
		Evict(namespace string, key []byte)
		// Len returns the number of cached records, deleted ones included
		Len() int
		// Clear clear the cache
		Clear()
		// Clone clones the cache
		Clone() KVStoreCache
	}

	kvCacheKey struct {
		namespace string
		key       string
	}

	// a nil value marks a deleted record
	kvCache map[kvCacheKey][]byte
)

// NewKVCache returns a KVCache
func NewKVCache() KVStoreCache {
	c := make(kvCache)
	return &c
}

func (c *kvCache) Read(namespace string, key []byte) ([]byte, error) {
	v, ok := (*c)[kvCacheKey{namespace, string(key)}]
	switch {
	case !ok:
		return nil, ErrNotExist
	case v == nil:
		return nil, ErrAlreadyDeleted
	default:
		return v, nil
	}
}

func (c *kvCache) Write(namespace string, key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	(*c)[kvCacheKey{namespace, string(key)}] = value
}

func (c *kvCache) Evict(namespace string, key []byte) {
	(*c)[kvCacheKey{namespace, string(key)}] = nil
}

func (c *kvCache) Len() int { return len(*c) }

func (c *kvCache) Clear() {
	*c = make(kvCache)
}

// Clone copies the index, values are shared since a write replaces them rather than mutating
func (c *kvCache) Clone() KVStoreCache {
	clone := make(kvCache, len(*c))
	for k, v := range *c {
		clone[k] = v
	}
	return &clone
}
