// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/pkg/lifecycle"
	"github.com/iotexproject/iotex-donation/pkg/log"
	"github.com/iotexproject/iotex-donation/pkg/util/byteutil"
	"github.com/iotexproject/iotex-donation/state"
)

const (
	// SystemNamespace is the namespace to store system information such as the committed height
	SystemNamespace = "System"
	// StateNamespace is the namespace used when a state option names none
	StateNamespace = "State"
)

var (
	// CurrentHeightKey indicates the key of the current factory height in the underlying DB
	CurrentHeightKey = []byte("currentHeight")

	// ErrStaleWorkingSet is the error that a working set was created before the last commit
	ErrStaleWorkingSet = errors.New("stale working set")
	// ErrNilWorkingSet is the error that a nil or foreign working set is committed
	ErrNilWorkingSet = errors.New("invalid working set")
)

var (
	stateDBMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotex_donation_state_db",
			Help: "Donation ledger state DB",
		},
		[]string{"type"},
	)
	dbBatchSizelMtc = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "iotex_donation_db_batch_size",
			Help: "DB batch size",
		},
		[]string{},
	)
)

func init() {
	prometheus.MustRegister(stateDBMtc)
	prometheus.MustRegister(dbBatchSizelMtc)
}

type (
	// Factory defines an interface for managing states
	Factory interface {
		lifecycle.StartStopper
		protocol.StateReader
		// NewWorkingSet stages changes on top of the committed state
		NewWorkingSet(context.Context) (WorkingSet, error)
		// Commit persists a working set atomically and advances the height
		Commit(context.Context, WorkingSet) error
	}

	// factory implements Factory interface, tracks changes to account/contract and batch-commits to DB
	factory struct {
		lifecycle          lifecycle.Lifecycle
		mutex              sync.RWMutex
		currentChainHeight uint64
		dao                db.KVStore // the underlying DB for account/contract storage
	}
)

// NewFactory creates a new state factory
func NewFactory(kv db.KVStore) (Factory, error) {
	if kv == nil {
		return nil, errors.New("invalid empty state db")
	}
	sf := &factory{
		dao: kv,
	}
	sf.lifecycle.Add(kv)
	return sf, nil
}

func (sf *factory) Start(ctx context.Context) error {
	if err := sf.lifecycle.OnStart(ctx); err != nil {
		return err
	}
	h, err := sf.dao.Get(SystemNamespace, CurrentHeightKey)
	switch errors.Cause(err) {
	case nil:
		sf.currentChainHeight = byteutil.BytesToUint64(h)
	case db.ErrNotExist:
		if err = sf.dao.Put(SystemNamespace, CurrentHeightKey, byteutil.Uint64ToBytes(0)); err != nil {
			return errors.Wrap(err, "failed to init factory's height")
		}
		sf.currentChainHeight = 0
	default:
		return err
	}
	log.L().Info("State factory started.", zap.Uint64("height", sf.currentChainHeight))
	return nil
}

func (sf *factory) Stop(ctx context.Context) error {
	return sf.lifecycle.OnStop(ctx)
}

// Height returns factory's height
func (sf *factory) Height() (uint64, error) {
	sf.mutex.RLock()
	defer sf.mutex.RUnlock()
	return sf.currentChainHeight, nil
}

// State returns a confirmed state in the state factory
func (sf *factory) State(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	sf.mutex.RLock()
	defer sf.mutex.RUnlock()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return 0, err
	}
	stateDBMtc.WithLabelValues("get").Inc()
	data, err := readState(sf.dao, namespace(cfg), cfg.Key)
	if err != nil {
		return sf.currentChainHeight, err
	}
	return sf.currentChainHeight, state.Deserialize(s, data)
}

func (sf *factory) NewWorkingSet(ctx context.Context) (WorkingSet, error) {
	sf.mutex.RLock()
	defer sf.mutex.RUnlock()
	return newWorkingSet(sf.currentChainHeight+1, sf.dao), nil
}

func (sf *factory) Commit(ctx context.Context, w WorkingSet) error {
	ws, ok := w.(*workingSet)
	if !ok || ws == nil {
		return ErrNilWorkingSet
	}
	sf.mutex.Lock()
	defer sf.mutex.Unlock()
	if ws.height != sf.currentChainHeight+1 {
		return errors.Wrapf(
			ErrStaleWorkingSet,
			"working set height %d doesn't follow current height %d",
			ws.height,
			sf.currentChainHeight,
		)
	}
	if err := ws.commit(); err != nil {
		return errors.Wrap(err, "failed to commit working set")
	}
	sf.currentChainHeight = ws.height
	return nil
}

func namespace(cfg *protocol.StateConfig) string {
	if cfg.Namespace == "" {
		return StateNamespace
	}
	return cfg.Namespace
}

func readState(kv db.KVStore, ns string, key []byte) ([]byte, error) {
	data, err := kv.Get(ns, key)
	if err != nil {
		if errors.Cause(err) == db.ErrNotExist {
			return nil, errors.Wrapf(state.ErrStateNotExist, "failed to get state of ns = %s and key = %x", ns, key)
		}
		return nil, err
	}
	return data, nil
}
