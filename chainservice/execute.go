// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action"
	"github.com/iotexproject/iotex-donation/action/protocol"
	accountutil "github.com/iotexproject/iotex-donation/action/protocol/account/util"
	"github.com/iotexproject/iotex-donation/action/protocol/donation"
	"github.com/iotexproject/iotex-donation/actpool"
	"github.com/iotexproject/iotex-donation/pkg/log"
	"github.com/iotexproject/iotex-donation/pkg/tracer"
)

type (
	stagedTransfersKey struct{}

	// stagedTransfers holds the transfers a call requested, they reach the actpool once the call commits
	stagedTransfers struct {
		transfers []*actpool.Transfer
	}
)

// Execute runs a contract call. Calls are serialized, a failed call leaves no trace in state or in the actpool.
func (cs *ChainService) Execute(ctx context.Context, elp *action.Envelope) (*action.Receipt, error) {
	ctx, span := tracer.NewSpan(ctx, "ChainService.Execute")
	defer span.End()

	if err := elp.SanityCheck(); err != nil {
		return nil, err
	}
	method := elp.Action().Method()
	span.SetAttributes(
		attribute.String("method", method),
		attribute.String("caller", elp.Caller().String()),
		attribute.String("amount", elp.Amount().Dec()),
	)
	receipt, err := cs.execute(ctx, elp)
	if err != nil {
		_executionMtc.WithLabelValues(method, "failure").Inc()
		span.RecordError(err)
		log.L().Debug("Call failed.", zap.String("method", method), zap.Error(err))
		return nil, err
	}
	_executionMtc.WithLabelValues(method, "success").Inc()
	return receipt, nil
}

func (cs *ChainService) execute(ctx context.Context, elp *action.Envelope) (*action.Receipt, error) {
	if _, ok := elp.Action().(action.PrivilegedAction); ok && elp.Caller().String() != cs.owner.String() {
		return nil, errors.Wrapf(ErrUnauthorized, "%s cannot call %s", elp.Caller().String(), elp.Action().Method())
	}

	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	ws, err := cs.factory.NewWorkingSet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain working set from state factory")
	}
	height, err := ws.Height()
	if err != nil {
		return nil, err
	}
	caller, err := accountutil.LoadOrCreateAccount(ws, elp.Caller())
	if err != nil {
		return nil, err
	}
	caller.IncreaseNonce()
	if err := accountutil.StoreAccount(ws, elp.Caller(), caller); err != nil {
		return nil, err
	}
	elp = elp.WithNonce(caller.Nonce())

	staged := &stagedTransfers{}
	ctx = context.WithValue(ctx, stagedTransfersKey{}, staged)
	ctx = protocol.WithRegistry(ctx, cs.registry)
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    height,
		BlockTimeStamp: cs.clock.Now(),
	})
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:     elp.Caller(),
		Amount:     elp.Amount(),
		ActionHash: elp.Hash(cs.contract.String()),
		Nonce:      elp.Nonce(),
	})

	if _, ok := elp.Action().(*action.Construct); !ok && cs.cfg.Chain.LazyInit {
		if err := cs.donation.CreateGenesisStates(ctx, ws); err != nil {
			return nil, errors.Wrap(err, "failed to initialize the contract")
		}
	}
	deposit, err := cs.account.Deposit(ctx, ws, elp.Caller(), cs.contract, elp.Amount())
	if err != nil {
		return nil, errors.Wrap(err, "failed to deposit the attached value")
	}

	var receipt *action.Receipt
	for _, p := range cs.registry.All() {
		if receipt, err = p.Handle(ctx, elp.Action(), ws); err != nil {
			return nil, errors.Wrapf(err, "error when protocol %s handles action", p.Name())
		}
		if receipt != nil {
			break
		}
	}
	if receipt == nil {
		return nil, errors.Wrapf(ErrUnhandledAction, "method %s", elp.Action().Method())
	}
	if deposit != nil {
		receipt.AddTransactionLogs(deposit)
	}

	if err := cs.factory.Commit(ctx, ws); err != nil {
		return nil, errors.Wrap(err, "failed to commit the call")
	}
	cs.readCache.Clear()
	if len(staged.transfers) > 0 {
		// capacity was reserved when the transfers were requested
		if err := cs.actpool.Add(ctx, staged.transfers...); err != nil {
			log.L().Error("Failed to stage transfers of a committed call.",
				log.Hex("actionHash", receipt.ActionHash[:]),
				zap.Error(err))
		}
	}
	return receipt, nil
}

// requestTransfer stages a transfer out of the contract for the running call
func (cs *ChainService) requestTransfer(ctx context.Context, amount *uint256.Int, recipient address.Address) error {
	staged, ok := ctx.Value(stagedTransfersKey{}).(*stagedTransfers)
	if !ok {
		return errors.New("transfer requested outside of a call")
	}
	// a zero transfer moves nothing, so it is not staged
	if amount == nil || amount.IsZero() {
		return nil
	}
	if uint64(len(staged.transfers)) >= cs.actpool.Available() {
		return errors.Wrapf(actpool.ErrActPoolFull, "cannot stage transfer of %s to %s", amount.Dec(), recipient.String())
	}
	actionCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	staged.transfers = append(staged.transfers, &actpool.Transfer{
		Sender:     cs.contract,
		Recipient:  recipient,
		Amount:     amount.Clone(),
		ActionHash: actionCtx.ActionHash,
		Height:     blkCtx.BlockHeight,
	})
	return nil
}

// ReadState reads the committed state through a registered protocol
func (cs *ChainService) ReadState(ctx context.Context, protocolID string, method []byte, args ...[]byte) ([]byte, error) {
	p, ok := cs.registry.Find(protocolID)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProtocol, "protocol %s", protocolID)
	}
	height, err := cs.factory.Height()
	if err != nil {
		return nil, err
	}
	key := &ReadKey{
		Name:   protocolID,
		Height: height,
		Method: method,
		Args:   args,
	}
	if d, ok := cs.readCache.Get(key); ok {
		return d, nil
	}
	d, err := p.ReadState(protocol.WithRegistry(ctx, cs.registry), cs.factory, method, args...)
	if err != nil {
		return nil, err
	}
	cs.readCache.Put(key, d)
	return d, nil
}

// ReadContract calls a view method of the donation contract
func (cs *ChainService) ReadContract(ctx context.Context, method string, args ...string) ([]byte, error) {
	bargs := make([][]byte, 0, len(args))
	for _, arg := range args {
		bargs = append(bargs, []byte(arg))
	}
	return cs.ReadState(ctx, donation.ProtocolID, []byte(method), bargs...)
}

// DonationForID returns the cumulative donation of an account
func (cs *ChainService) DonationForID(ctx context.Context, addr address.Address) (*donation.Donation, error) {
	return cs.donation.DonationForID(ctx, cs.factory, addr)
}

// TotalNumberDonations returns the number of distinct donors
func (cs *ChainService) TotalNumberDonations(ctx context.Context) (uint64, error) {
	return cs.donation.TotalNumberDonations(ctx, cs.factory)
}

// Beneficiary returns the current beneficiary
func (cs *ChainService) Beneficiary(ctx context.Context) (address.Address, error) {
	return cs.donation.Beneficiary(ctx, cs.factory)
}

// Balance returns the committed balance of an account
func (cs *ChainService) Balance(_ context.Context, addr address.Address) (*uint256.Int, error) {
	acct, err := accountutil.AccountState(cs.factory, addr)
	if err != nil {
		return nil, err
	}
	return acct.Balance.Clone(), nil
}
