// Copyright (c) 2022 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"encoding/json"

	"github.com/iotexproject/go-pkgs/cache/ttl"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/pkg/log"
)

var _readCacheMtc = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "iotex_donation_read_cache",
		Help: "Reads served from or missed by the read cache",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(_readCacheMtc)
}

type (
	// ReadKey identifies a view call at a committed height
	ReadKey struct {
		Name   string   `json:"name,omitempty"`
		Height uint64   `json:"height"`
		Method []byte   `json:"method,omitempty"`
		Args   [][]byte `json:"args,omitempty"`
	}

	// ReadCache stores view results, it is cleared whenever a new height is committed
	ReadCache struct {
		total, hit *atomic.Uint64
		c          *ttl.Cache
	}
)

// Hash returns the hash of key's json string
func (k *ReadKey) Hash() hash.Hash160 {
	b, _ := json.Marshal(k)
	return hash.Hash160b(b)
}

// NewReadCache returns a new read cache
func NewReadCache() *ReadCache {
	c, _ := ttl.NewCache()
	return &ReadCache{
		total: atomic.NewUint64(0),
		hit:   atomic.NewUint64(0),
		c:     c,
	}
}

// Get returns the cached result of key
func (rc *ReadCache) Get(key *ReadKey) ([]byte, bool) {
	rc.total.Inc()
	d, ok := rc.c.Get(key.Hash())
	if !ok {
		_readCacheMtc.WithLabelValues("miss").Inc()
		return nil, false
	}
	rc.hit.Inc()
	_readCacheMtc.WithLabelValues("hit").Inc()
	return d.([]byte), true
}

// Put caches the result of key
func (rc *ReadCache) Put(key *ReadKey, value []byte) {
	rc.c.Set(key.Hash(), value)
}

// Clear drops every cached result
func (rc *ReadCache) Clear() {
	if total := rc.total.Load(); total > 0 {
		log.Logger("chainservice").Debug("Read cache cleared.",
			zap.Uint64("total", total),
			zap.Uint64("hit", rc.hit.Load()),
			zap.Int("size", rc.c.Count()))
	}
	rc.c.Reset()
}

// Stats returns the number of lookups and of hits
func (rc *ReadCache) Stats() (total, hit uint64) {
	return rc.total.Load(), rc.hit.Load()
}
