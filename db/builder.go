// Copyright (c) 2022 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package db

import (
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/pkg/util/fileutil"
)

var (
	// ErrEmptyDBPath is the error when db path is empty
	ErrEmptyDBPath = errors.New("empty db path")
)

// CreateKVStore creates db from config
func CreateKVStore(cfg Config) (KVStore, error) {
	switch cfg.DBType {
	case DBMemory:
		return NewMemKVStore(), nil
	case DBPebble, DBBolt:
		if len(cfg.DbPath) == 0 {
			return nil, ErrEmptyDBPath
		}
		if err := fileutil.EnsureParentDir(cfg.DbPath); err != nil {
			return nil, err
		}
		if cfg.DBType == DBPebble {
			return NewPebbleDB(cfg), nil
		}
		return NewBoltDB(cfg), nil
	default:
		return nil, errors.Errorf("unsupported db type %s", cfg.DBType)
	}
}
