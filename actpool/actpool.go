// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package actpool

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/pkg/log"
)

var (
	// ErrActPoolFull is the error that the pool cannot take more transfers
	ErrActPoolFull = errors.New("action pool is full")
	// ErrInvalidTransfer is the error that a transfer misses its recipient or amount
	ErrInvalidTransfer = errors.New("invalid transfer")
)

var (
	_actpoolMtc = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "iotex_donation_actpool_rejection_metrics",
		Help: "actpool metrics.",
	}, []string{"type"})
	_actpoolSizeMtc = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "iotex_donation_actpool_pending_transfers",
		Help: "number of transfers waiting for settlement",
	})
)

func init() {
	prometheus.MustRegister(_actpoolMtc)
	prometheus.MustRegister(_actpoolSizeMtc)
}

type (
	// Transfer is an outgoing transfer requested by a contract call and settled on a later round
	Transfer struct {
		Sender     address.Address
		Recipient  address.Address
		Amount     *uint256.Int
		ActionHash hash.Hash256
		Height     uint64
	}

	// ActPool is the interface of actpool
	ActPool interface {
		// Add adds transfers into the pool, either all of them or none
		Add(ctx context.Context, transfers ...*Transfer) error
		// PendingTransfers returns the pending transfers in arrival order
		PendingTransfers() []*Transfer
		// PopPending removes and returns up to max pending transfers in arrival order, max <= 0 pops all
		PopPending(max int) []*Transfer
		// Size returns the number of pending transfers
		Size() uint64
		// Capacity returns the act pool capacity
		Capacity() uint64
		// Available returns how many more transfers the pool can take
		Available() uint64
		// Reset drops all pending transfers
		Reset()
	}

	// actPool implements ActPool interface
	actPool struct {
		mutex   sync.RWMutex
		cfg     Config
		pending []*Transfer
		size    *atomic.Uint64
	}
)

// NewActPool constructs a new actpool
func NewActPool(cfg Config) (ActPool, error) {
	if cfg.MaxNumTransfersPerPool == 0 {
		return nil, errors.New("actpool capacity must be positive")
	}
	return &actPool{
		cfg:  cfg,
		size: atomic.NewUint64(0),
	}, nil
}

func (ap *actPool) Add(ctx context.Context, transfers ...*Transfer) error {
	for _, tsf := range transfers {
		if tsf == nil || tsf.Recipient == nil || tsf.Amount == nil || tsf.Amount.IsZero() {
			_actpoolMtc.WithLabelValues("invalidTransfer").Inc()
			return ErrInvalidTransfer
		}
	}
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	if uint64(len(ap.pending)+len(transfers)) > ap.cfg.MaxNumTransfersPerPool {
		_actpoolMtc.WithLabelValues("overMaxNumTransfersPerPool").Inc()
		return errors.Wrapf(
			ErrActPoolFull,
			"insufficient space for %d transfers, %d pending",
			len(transfers),
			len(ap.pending),
		)
	}
	for _, tsf := range transfers {
		ap.pending = append(ap.pending, tsf)
		log.L().Debug("Transfer staged.",
			zap.String("recipient", tsf.Recipient.String()),
			zap.String("amount", tsf.Amount.Dec()),
			log.Hex("actionHash", tsf.ActionHash[:]))
	}
	ap.updateSize()
	return nil
}

func (ap *actPool) PendingTransfers() []*Transfer {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()
	transfers := make([]*Transfer, len(ap.pending))
	copy(transfers, ap.pending)
	return transfers
}

func (ap *actPool) PopPending(max int) []*Transfer {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	n := len(ap.pending)
	if max > 0 && max < n {
		n = max
	}
	popped := make([]*Transfer, n)
	copy(popped, ap.pending[:n])
	ap.pending = ap.pending[n:]
	ap.updateSize()
	return popped
}

func (ap *actPool) Size() uint64 {
	return ap.size.Load()
}

func (ap *actPool) Capacity() uint64 {
	return ap.cfg.MaxNumTransfersPerPool
}

func (ap *actPool) Available() uint64 {
	size := ap.size.Load()
	if size >= ap.cfg.MaxNumTransfersPerPool {
		return 0
	}
	return ap.cfg.MaxNumTransfersPerPool - size
}

func (ap *actPool) Reset() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	ap.pending = nil
	ap.updateSize()
}

func (ap *actPool) updateSize() {
	ap.size.Store(uint64(len(ap.pending)))
	_actpoolSizeMtc.Set(float64(len(ap.pending)))
}
