// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package factory

import (
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/db/batch"
	"github.com/iotexproject/iotex-donation/pkg/util/byteutil"
	"github.com/iotexproject/iotex-donation/state"
)

type (
	// WorkingSet defines an interface for working set of states changes
	WorkingSet interface {
		protocol.StateManager
		// Size returns the number of staged writes
		Size() int
	}

	// workingSet implements WorkingSet interface, tracks pending changes to account/contract in local cache
	workingSet struct {
		height uint64
		dao    db.KVStore
		cb     batch.CachedBatch // cached batch for pending writes
	}
)

func newWorkingSet(height uint64, kv db.KVStore) *workingSet {
	return &workingSet{
		height: height,
		dao:    kv,
		cb:     batch.NewCachedBatch(),
	}
}

// Height returns the height the working set will be committed at
func (ws *workingSet) Height() (uint64, error) {
	return ws.height, nil
}

func (ws *workingSet) Size() int {
	return ws.cb.Size()
}

func (ws *workingSet) Snapshot() int {
	return ws.cb.Snapshot()
}

func (ws *workingSet) Revert(snapshot int) error {
	return ws.cb.Revert(snapshot)
}

// State pulls a state from the pending writes, then from DB
func (ws *workingSet) State(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	stateDBMtc.WithLabelValues("get").Inc()
	ns := namespace(cfg)
	data, err := ws.cb.Get(ns, cfg.Key)
	switch errors.Cause(err) {
	case nil:
	case batch.ErrAlreadyDeleted:
		return ws.height, errors.Wrapf(state.ErrStateNotExist, "state of ns = %s and key = %x was deleted", ns, cfg.Key)
	case batch.ErrNotExist:
		if data, err = readState(ws.dao, ns, cfg.Key); err != nil {
			return ws.height, err
		}
	default:
		return ws.height, err
	}
	return ws.height, state.Deserialize(s, data)
}

// PutState puts a state into the pending writes
func (ws *workingSet) PutState(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	ss, err := state.Serialize(s)
	if err != nil {
		return ws.height, errors.Wrapf(err, "failed to convert state %v to bytes", s)
	}
	stateDBMtc.WithLabelValues("put").Inc()
	ns := namespace(cfg)
	ws.cb.Put(ns, cfg.Key, ss, "error when putting k = %x", cfg.Key)
	return ws.height, nil
}

// DelState deletes a state from the pending writes
func (ws *workingSet) DelState(opts ...protocol.StateOption) (uint64, error) {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	stateDBMtc.WithLabelValues("delete").Inc()
	ns := namespace(cfg)
	ws.cb.Delete(ns, cfg.Key, "error when deleting k = %x", cfg.Key)
	return ws.height, nil
}

func (ws *workingSet) commit() error {
	ws.cb.Put(SystemNamespace, CurrentHeightKey, byteutil.Uint64ToBytes(ws.height), "failed to store height")
	dbBatchSizelMtc.WithLabelValues().Set(float64(ws.cb.Size()))
	if err := ws.dao.WriteBatch(ws.cb); err != nil {
		return err
	}
	ws.cb.Clear()
	return nil
}
