// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"context"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/pkg/log"
	"github.com/iotexproject/iotex-donation/pkg/tracer"
)

// Settle runs one settlement round: it moves pending transfers from the contract to their recipients. A transfer the
// contract cannot fund is logged and dropped, the ledger write of the call which requested it stays.
func (cs *ChainService) Settle(ctx context.Context) (int, error) {
	ctx, span := tracer.NewSpan(ctx, "ChainService.Settle")
	defer span.End()

	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	transfers := cs.actpool.PopPending(cs.cfg.Settlement.BatchSize)
	if len(transfers) == 0 {
		return 0, nil
	}
	span.SetAttributes(attribute.Int("transfers", len(transfers)))
	requeue := func(err error) (int, error) {
		if aerr := cs.actpool.Add(ctx, transfers...); aerr != nil {
			log.L().Error("Failed to requeue transfers.", zap.Int("size", len(transfers)), zap.Error(aerr))
		}
		span.RecordError(err)
		return 0, err
	}

	ws, err := cs.factory.NewWorkingSet(ctx)
	if err != nil {
		return requeue(errors.Wrap(err, "failed to obtain working set from state factory"))
	}
	height, err := ws.Height()
	if err != nil {
		return requeue(err)
	}
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    height,
		BlockTimeStamp: cs.clock.Now(),
	})
	settled := 0
	for _, tsf := range transfers {
		sn := ws.Snapshot()
		if _, err := cs.account.Transfer(ctx, ws, tsf.Sender, tsf.Recipient, tsf.Amount); err != nil {
			if rerr := ws.Revert(sn); rerr != nil {
				return requeue(errors.Wrap(rerr, "failed to revert a failed transfer"))
			}
			_settlementMtc.WithLabelValues("dropped").Inc()
			log.L().Error("Failed to settle transfer, dropped.",
				zap.String("sender", tsf.Sender.String()),
				zap.String("recipient", tsf.Recipient.String()),
				zap.String("amount", tsf.Amount.Dec()),
				log.Hex("actionHash", tsf.ActionHash[:]),
				zap.Error(err))
			continue
		}
		settled++
	}

	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(cs.cfg.Settlement.RetryInterval), cs.cfg.Settlement.MaxRetries)
	if err := backoff.Retry(func() error {
		return cs.factory.Commit(ctx, ws)
	}, bo); err != nil {
		_settlementMtc.WithLabelValues("failed").Add(float64(len(transfers)))
		return requeue(errors.Wrap(err, "failed to commit settlement"))
	}
	cs.readCache.Clear()
	_settlementMtc.WithLabelValues("settled").Add(float64(settled))
	log.L().Info("Settlement round done.",
		zap.Uint64("height", height),
		zap.Int("settled", settled),
		zap.Int("dropped", len(transfers)-settled))
	return settled, nil
}

// TriggerSettlement asks for a settlement round without waiting for the next tick
func (cs *ChainService) TriggerSettlement() bool {
	return cs.triggerTask.Trigger()
}

func (cs *ChainService) settleRound() {
	if _, err := cs.Settle(context.Background()); err != nil {
		log.L().Error("Settlement round failed.", zap.Error(err))
	}
}
