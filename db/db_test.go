// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/db/batch"
	"github.com/iotexproject/iotex-donation/testutil"
)

var (
	_bucket1 = "test_ns1"
	_bucket2 = "test_ns2"
	_k1      = []byte("key_1")
	_k2      = []byte("key_2")
	_v1      = []byte("value_1")
	_v2      = []byte("value_2")
	_v3      = []byte("value_3")
)

func testKVStores(t *testing.T, test func(*testing.T, KVStore)) {
	t.Run("memory", func(t *testing.T) {
		test(t, NewMemKVStore())
	})
	t.Run("boltdb", func(t *testing.T) {
		cfg := DefaultConfig
		cfg.DbPath = testutil.PathOfTempDir(t, "bolt.db")
		test(t, NewBoltDB(cfg))
	})
	t.Run("pebbledb", func(t *testing.T) {
		cfg := DefaultConfig
		cfg.DBType = DBPebble
		cfg.DbPath = testutil.PathOfTempDir(t, "pebble")
		test(t, NewPebbleDB(cfg))
	})
}

func TestKVStorePutGet(t *testing.T) {
	testKVStores(t, func(t *testing.T, kvStore KVStore) {
		r := require.New(t)
		ctx := context.Background()
		r.NoError(kvStore.Start(ctx))
		defer func() {
			r.NoError(kvStore.Stop(ctx))
		}()

		_, err := kvStore.Get(_bucket1, _k1)
		r.Equal(ErrNotExist, errors.Cause(err))

		r.NoError(kvStore.Put(_bucket1, _k1, _v1))
		value, err := kvStore.Get(_bucket1, _k1)
		r.NoError(err)
		r.Equal(_v1, value)

		// same key in another namespace is a different record
		_, err = kvStore.Get(_bucket2, _k1)
		r.Equal(ErrNotExist, errors.Cause(err))

		r.NoError(kvStore.Put(_bucket1, _k1, _v2))
		value, err = kvStore.Get(_bucket1, _k1)
		r.NoError(err)
		r.Equal(_v2, value)

		r.NoError(kvStore.Delete(_bucket1, _k1))
		_, err = kvStore.Get(_bucket1, _k1)
		r.Equal(ErrNotExist, errors.Cause(err))

		// deleting a missing key is not an error
		r.NoError(kvStore.Delete(_bucket2, _k2))
	})
}

func TestKVStoreWriteBatch(t *testing.T) {
	testKVStores(t, func(t *testing.T, kvStore KVStore) {
		r := require.New(t)
		ctx := context.Background()
		r.NoError(kvStore.Start(ctx))
		defer func() {
			r.NoError(kvStore.Stop(ctx))
		}()

		r.NoError(kvStore.Put(_bucket2, _k2, _v1))

		b := batch.NewCachedBatch()
		b.Put(_bucket1, _k1, _v1, "")
		b.Put(_bucket1, _k1, _v3, "")
		b.Put(_bucket1, _k2, _v2, "")
		b.Delete(_bucket2, _k2, "")
		r.NoError(kvStore.WriteBatch(b))

		value, err := kvStore.Get(_bucket1, _k1)
		r.NoError(err)
		r.Equal(_v3, value)
		value, err = kvStore.Get(_bucket1, _k2)
		r.NoError(err)
		r.Equal(_v2, value)
		_, err = kvStore.Get(_bucket2, _k2)
		r.Equal(ErrNotExist, errors.Cause(err))
	})
}

func TestKVStoreReopen(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	for _, dbType := range []string{DBBolt, DBPebble} {
		cfg := DefaultConfig
		cfg.DBType = dbType
		cfg.DbPath = testutil.PathOfTempDir(t, dbType)

		kvStore, err := CreateKVStore(cfg)
		r.NoError(err)
		r.NoError(kvStore.Start(ctx))
		r.NoError(kvStore.Put(_bucket1, _k1, _v1))
		r.NoError(kvStore.Stop(ctx))

		kvStore, err = CreateKVStore(cfg)
		r.NoError(err)
		r.NoError(kvStore.Start(ctx))
		value, err := kvStore.Get(_bucket1, _k1)
		r.NoError(err)
		r.Equal(_v1, value)
		r.NoError(kvStore.Stop(ctx))
	}
}

func TestDBNotStarted(t *testing.T) {
	r := require.New(t)
	cfg := DefaultConfig
	cfg.DbPath = testutil.PathOfTempDir(t, "bolt.db")
	for _, kvStore := range []KVStore{NewBoltDB(cfg), NewPebbleDB(cfg)} {
		r.Equal(ErrDBNotStarted, kvStore.Put(_bucket1, _k1, _v1))
		_, err := kvStore.Get(_bucket1, _k1)
		r.Equal(ErrDBNotStarted, err)
		r.Equal(ErrDBNotStarted, kvStore.WriteBatch(batch.NewBatch()))
	}
}

func TestCreateKVStore(t *testing.T) {
	r := require.New(t)
	cfg := DefaultConfig
	cfg.DbPath = ""
	_, err := CreateKVStore(cfg)
	r.Equal(ErrEmptyDBPath, err)

	cfg.DBType = DBMemory
	kvStore, err := CreateKVStore(cfg)
	r.NoError(err)
	r.NotNil(kvStore)

	cfg.DBType = "leveldb"
	_, err = CreateKVStore(cfg)
	r.Error(err)
}
