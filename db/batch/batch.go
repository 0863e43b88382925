// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNotExist indicates certain item does not exist in the cache
	ErrNotExist = errors.New("not exist in cache")
	// ErrAlreadyDeleted indicates the key has been deleted
	ErrAlreadyDeleted = errors.New("already deleted from cache")
	// ErrOutOfBound indicates an out of bound index
	ErrOutOfBound = errors.New("out of bound")
)

type (
	// KVStoreBatch stages Put/Delete entries in order, to be persisted at once by a KVStore's WriteBatch.
	// The batch is left intact when the write fails, so it can be retried.
	KVStoreBatch interface {
		// Lock locks the batch while a store reads its entries
		Lock()
		// Unlock unlocks the batch
		Unlock()
		// Put insert or update a record identified by (namespace, key)
		Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{})
		// Delete deletes a record by (namespace, key)
		Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{})
		// Size returns the size of batch
		Size() int
		// Entry returns the entry at the index
		Entry(int) (*WriteInfo, error)
		// Clear clears entries staged in batch
		Clear()
		// CloneBatch clones the batch
		CloneBatch() KVStoreBatch
	}

	// CachedBatch is a KVStoreBatch which also answers reads of its pending entries, and can be rolled back
	// to a snapshot
	CachedBatch interface {
		KVStoreBatch
		// Get gets a pending record by (namespace, key), ErrNotExist if the batch does not touch it
		Get(string, []byte) ([]byte, error)
		// Snapshot takes a snapshot of current cached batch
		Snapshot() int
		// Revert sets the cached batch to the state at the given snapshot
		Revert(int) error
	}

	writeQueue struct {
		mutex  sync.Mutex
		writes []*WriteInfo
	}

	cachedBatch struct {
		lock      sync.RWMutex
		queue     *writeQueue
		cache     KVStoreCache
		snapshots []snapshot
	}

	snapshot struct {
		size  int
		cache KVStoreCache
	}
)

// NewBatch returns a batch
func NewBatch() KVStoreBatch {
	return &writeQueue{}
}

func (q *writeQueue) Lock() { q.mutex.Lock() }

func (q *writeQueue) Unlock() { q.mutex.Unlock() }

func (q *writeQueue) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.writes = append(q.writes, newWriteInfo(Put, namespace, key, value, errorFormat, errorArgs))
}

func (q *writeQueue) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.writes = append(q.writes, newWriteInfo(Delete, namespace, key, nil, errorFormat, errorArgs))
}

// Size is called by stores holding the lock, so it does not lock
func (q *writeQueue) Size() int {
	return len(q.writes)
}

func (q *writeQueue) Entry(index int) (*WriteInfo, error) {
	if index < 0 || index >= len(q.writes) {
		return nil, errors.Wrapf(ErrOutOfBound, "index %d of %d", index, len(q.writes))
	}
	return q.writes[index], nil
}

func (q *writeQueue) Clear() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.writes = nil
}

// CloneBatch shares the write infos, they are never mutated once queued
func (q *writeQueue) CloneBatch() KVStoreBatch {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return &writeQueue{
		writes: append([]*WriteInfo(nil), q.writes...),
	}
}

func (q *writeQueue) truncate(size int) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.writes = q.writes[:size]
}

// NewCachedBatch returns a new cached batch buffer
func NewCachedBatch() CachedBatch {
	return &cachedBatch{
		queue: &writeQueue{},
		cache: NewKVCache(),
	}
}

func (cb *cachedBatch) Lock() {
	cb.lock.Lock()
	cb.queue.Lock()
}

func (cb *cachedBatch) Unlock() {
	cb.queue.Unlock()
	cb.lock.Unlock()
}

func (cb *cachedBatch) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.cache.Write(namespace, key, append([]byte(nil), value...))
	cb.queue.Put(namespace, key, value, errorFormat, errorArgs...)
}

func (cb *cachedBatch) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.cache.Evict(namespace, key)
	cb.queue.Delete(namespace, key, errorFormat, errorArgs...)
}

func (cb *cachedBatch) Size() int {
	return cb.queue.Size()
}

func (cb *cachedBatch) Entry(index int) (*WriteInfo, error) {
	return cb.queue.Entry(index)
}

func (cb *cachedBatch) Clear() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.cache.Clear()
	cb.queue.Clear()
	cb.snapshots = nil
}

func (cb *cachedBatch) Get(namespace string, key []byte) ([]byte, error) {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	return cb.cache.Read(namespace, key)
}

// Snapshot records the queue length and a copy of the cache, the queue is append-only between snapshots
func (cb *cachedBatch) Snapshot() int {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.snapshots = append(cb.snapshots, snapshot{
		size:  cb.queue.Size(),
		cache: cb.cache.Clone(),
	})
	return len(cb.snapshots) - 1
}

// Revert sets the cached batch to the state at the given snapshot, snapshots taken after it are discarded
func (cb *cachedBatch) Revert(sn int) error {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	if sn < 0 || sn >= len(cb.snapshots) {
		return errors.Wrapf(ErrOutOfBound, "invalid snapshot number = %d", sn)
	}
	s := cb.snapshots[sn]
	cb.queue.truncate(s.size)
	cb.cache = s.cache.Clone()
	cb.snapshots = cb.snapshots[:sn+1]
	return nil
}

// CloneBatch clones the pending writes and the cache, but not the snapshots
func (cb *cachedBatch) CloneBatch() KVStoreBatch {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	return &cachedBatch{
		queue: cb.queue.CloneBatch().(*writeQueue),
		cache: cb.cache.Clone(),
	}
}
