// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"context"
	"sync"

	"github.com/facebookgo/clock"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/action/protocol/account"
	"github.com/iotexproject/iotex-donation/action/protocol/donation"
	"github.com/iotexproject/iotex-donation/actpool"
	"github.com/iotexproject/iotex-donation/config"
	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/pkg/lifecycle"
	"github.com/iotexproject/iotex-donation/pkg/log"
	"github.com/iotexproject/iotex-donation/pkg/routine"
	"github.com/iotexproject/iotex-donation/state/factory"
)

var (
	// ErrUnauthorized is the error that a privileged call comes from someone other than the owner
	ErrUnauthorized = errors.New("caller is not authorized")
	// ErrUnhandledAction is the error that no registered protocol handles the action
	ErrUnhandledAction = errors.New("no protocol handles the action")
	// ErrUnknownProtocol is the error that a read names a protocol which is not registered
	ErrUnknownProtocol = errors.New("unknown protocol")
)

var (
	_executionMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotex_donation_execution",
			Help: "Executed contract calls",
		},
		[]string{"method", "status"},
	)
	_settlementMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotex_donation_settlement",
			Help: "Settled and dropped transfers",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(_executionMtc)
	prometheus.MustRegister(_settlementMtc)
}

// ChainService runs the donation contract on top of a persistent state factory, and settles the transfers its calls
// request on later rounds.
type ChainService struct {
	mutex       sync.Mutex
	lifecycle   lifecycle.Lifecycle
	tasks       lifecycle.Lifecycle
	cfg         config.Config
	owner       address.Address
	contract    address.Address
	factory     factory.Factory
	actpool     actpool.ActPool
	registry    *protocol.Registry
	account     *account.Protocol
	donation    *donation.Protocol
	readCache   *ReadCache
	clock       clock.Clock
	settleTask  *routine.RecurringTask
	triggerTask *routine.TriggerTask
}

type optionParams struct {
	kv    db.KVStore
	clock clock.Clock
}

// Option sets ChainService construction parameter.
type Option func(ops *optionParams) error

// WithKVStore is an option to run the service on a pre-created KV store.
func WithKVStore(kv db.KVStore) Option {
	return func(ops *optionParams) error {
		if kv == nil {
			return errors.New("invalid empty kv store")
		}
		ops.kv = kv
		return nil
	}
}

// WithClock is an option to time the rounds with the given clock.
func WithClock(c clock.Clock) Option {
	return func(ops *optionParams) error {
		ops.clock = c
		return nil
	}
}

// New creates a ChainService from config and options.
func New(cfg config.Config, opts ...Option) (*ChainService, error) {
	ops := optionParams{
		clock: clock.New(),
	}
	for _, opt := range opts {
		if err := opt(&ops); err != nil {
			return nil, err
		}
	}
	kv := ops.kv
	if kv == nil {
		var err error
		if kv, err = db.CreateKVStore(cfg.DB); err != nil {
			return nil, errors.Wrap(err, "failed to create state db")
		}
	}
	sf, err := factory.NewFactory(kv)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state factory")
	}
	ap, err := actpool.NewActPool(cfg.ActPool)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actpool")
	}
	cs := &ChainService{
		cfg:       cfg,
		owner:     cfg.Chain.Owner(),
		contract:  cfg.Chain.Contract(),
		factory:   sf,
		actpool:   ap,
		registry:  protocol.NewRegistry(),
		account:   account.NewProtocol(),
		readCache: NewReadCache(),
		clock:     ops.clock,
	}
	cs.donation, err = donation.NewProtocol(
		cfg.Chain.Donation,
		cs.contract,
		donation.TransferRequesterFunc(cs.requestTransfer),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create donation protocol")
	}
	if err := cs.account.Register(cs.registry); err != nil {
		return nil, err
	}
	if err := cs.donation.Register(cs.registry); err != nil {
		return nil, err
	}
	cs.settleTask = routine.NewRecurringTask(cs.settleRound, cfg.Settlement.Interval, routine.WithClock(ops.clock))
	cs.triggerTask = routine.NewTriggerTask(cs.settleRound, routine.TriggerBufferSize(1))
	cs.lifecycle.Add(sf)
	cs.tasks.AddModels(cs.triggerTask, cs.settleTask)
	return cs, nil
}

// Start starts the state factory and the settlement rounds.
func (cs *ChainService) Start(ctx context.Context) error {
	if err := cs.lifecycle.OnStart(ctx); err != nil {
		return errors.Wrap(err, "error when starting chain service")
	}
	if err := cs.tasks.OnStart(ctx); err != nil {
		return errors.Wrap(err, "error when starting settlement")
	}
	log.L().Info("Donation chain service started.",
		zap.String("contract", cs.contract.String()),
		zap.String("owner", cs.owner.String()))
	return nil
}

// Stop stops the settlement rounds, settles what is still pending, then stops the state factory.
func (cs *ChainService) Stop(ctx context.Context) error {
	if err := cs.tasks.OnStop(ctx); err != nil {
		return errors.Wrap(err, "error when stopping settlement")
	}
	for {
		// also waits for a round in flight
		if _, err := cs.Settle(ctx); err != nil {
			log.L().Error("Failed to settle pending transfers on stop.",
				zap.Uint64("pending", cs.actpool.Size()),
				zap.Error(err))
			break
		}
		if cs.actpool.Size() == 0 {
			break
		}
	}
	if err := cs.lifecycle.OnStop(ctx); err != nil {
		return errors.Wrap(err, "error when stopping chain service")
	}
	return nil
}

// Contract returns the contract address
func (cs *ChainService) Contract() address.Address { return cs.contract }

// Owner returns the owner address
func (cs *ChainService) Owner() address.Address { return cs.owner }

// StateFactory returns the state factory
func (cs *ChainService) StateFactory() factory.Factory { return cs.factory }

// ActionPool returns the pool of pending transfers
func (cs *ChainService) ActionPool() actpool.ActPool { return cs.actpool }

// Registry returns the registry of protocols
func (cs *ChainService) Registry() *protocol.Registry { return cs.registry }

// Donation returns the donation protocol
func (cs *ChainService) Donation() *donation.Protocol { return cs.donation }
