// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"context"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action"
	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/state"
)

const (
	// ProtocolID is the protocol ID
	ProtocolID = "donation"

	_protocolNamespace = "Donation"

	// DonationForIDMethod reads the donation record of an account
	DonationForIDMethod = "get_donation_for_id"
	// TotalNumberDonationsMethod reads the number of distinct donors
	TotalNumberDonationsMethod = "get_total_number_donations"
	// NameBeneficiaryMethod reads the current beneficiary
	NameBeneficiaryMethod = "get_name_beneficiary"
)

var (
	_beneficiaryKey     = []byte("beneficiary")
	_countKey           = []byte("count")
	_donationKeyPrefix  = []byte("donation")
	_ protocol.Protocol = (*Protocol)(nil)

	// ErrContractAlreadyInitialized is the error of constructing a contract whose state exists
	ErrContractAlreadyInitialized = errors.New("contract already initialized")
	// ErrContractNotInitialized is the error of mutating a contract whose state does not exist
	ErrContractNotInitialized = errors.New("contract not initialized")
	// ErrInsufficientFirstDonation is the error of a first donation smaller than the storage cost
	ErrInsufficientFirstDonation = errors.New("first donation does not cover the storage cost")
	// ErrAmountOverflow is the error of an amount which does not fit in 128 bits
	ErrAmountOverflow = errors.New("amount overflows 128 bits")
	// ErrUnknownMethod is the error of reading an unknown method
	ErrUnknownMethod = errors.New("unknown method")
)

type (
	// TransferRequester requests an outgoing transfer from the contract, it is settled later and never observed
	TransferRequester interface {
		RequestTransfer(ctx context.Context, amount *uint256.Int, recipient address.Address) error
	}

	// TransferRequesterFunc adapts a function to a TransferRequester
	TransferRequesterFunc func(context.Context, *uint256.Int, address.Address) error

	// Protocol defines the protocol of the donation ledger. It accepts donations, keeps the cumulative figure of each
	// donor, keeps the storage cost out of a donor's first donation and forwards the rest to the beneficiary.
	Protocol struct {
		addr               address.Address
		keyPrefix          []byte
		storageCost        *uint256.Int
		defaultBeneficiary address.Address
		transfer           TransferRequester
	}
)

// RequestTransfer calls f(ctx, amount, recipient)
func (f TransferRequesterFunc) RequestTransfer(ctx context.Context, amount *uint256.Int, recipient address.Address) error {
	return f(ctx, amount, recipient)
}

// NewProtocol instantiates a donation protocol deployed at contract
func NewProtocol(cfg Config, contract address.Address, transfer TransferRequester) (*Protocol, error) {
	if contract == nil {
		return nil, errors.New("contract address is nil")
	}
	if transfer == nil {
		return nil, errors.New("transfer requester is nil")
	}
	cost, beneficiary, err := cfg.Parse()
	if err != nil {
		return nil, err
	}
	return &Protocol{
		addr:               contract,
		keyPrefix:          contract.Bytes(),
		storageCost:        cost,
		defaultBeneficiary: beneficiary,
		transfer:           transfer,
	}, nil
}

// FindProtocol finds the registered protocol from registry
func FindProtocol(registry *protocol.Registry) *Protocol {
	if registry == nil {
		return nil
	}
	p, ok := registry.Find(ProtocolID)
	if !ok {
		return nil
	}
	dp, ok := p.(*Protocol)
	if !ok {
		return nil
	}
	return dp
}

// Register registers the protocol with a unique ID
func (p *Protocol) Register(r *protocol.Registry) error {
	return r.Register(ProtocolID, p)
}

// Name returns the name of protocol
func (p *Protocol) Name() string {
	return ProtocolID
}

// Address returns the contract address
func (p *Protocol) Address() address.Address {
	return p.addr
}

// StorageCost returns the one-time fee of a donor's first donation
func (p *Protocol) StorageCost() *uint256.Int {
	return p.storageCost.Clone()
}

// Handle handles the actions on the donation protocol
func (p *Protocol) Handle(
	ctx context.Context,
	act action.Action,
	sm protocol.StateManager,
) (*action.Receipt, error) {
	var (
		ret  []byte
		logs []*action.Log
	)
	switch act := act.(type) {
	case *action.Construct:
		if err := p.Construct(ctx, sm, act.Beneficiary()); err != nil {
			return nil, err
		}
	case *action.ChangeBeneficiary:
		if err := p.ChangeBeneficiary(ctx, sm, act.Beneficiary()); err != nil {
			return nil, err
		}
	case *action.Donate:
		total, err := p.Donate(ctx, sm)
		if err != nil {
			return nil, err
		}
		ret = []byte(total.Dec())
		logs = append(logs, p.donationLog(ctx, total))
	default:
		return nil, nil
	}
	return p.createReceipt(ctx, ret, logs...), nil
}

// ReadState read the state on blockchain via protocol
func (p *Protocol) ReadState(
	ctx context.Context,
	sr protocol.StateReader,
	method []byte,
	args ...[]byte,
) ([]byte, error) {
	switch string(method) {
	case DonationForIDMethod:
		if len(args) != 1 {
			return nil, errors.Errorf("invalid number of arguments %d", len(args))
		}
		addr, err := address.FromString(string(args[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account %s", args[0])
		}
		d, err := p.DonationForID(ctx, sr, addr)
		if err != nil {
			return nil, err
		}
		return d.MarshalJSON()
	case TotalNumberDonationsMethod:
		count, err := p.TotalNumberDonations(ctx, sr)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatUint(count, 10)), nil
	case NameBeneficiaryMethod:
		addr, err := p.Beneficiary(ctx, sr)
		if err != nil {
			return nil, err
		}
		return []byte(addr.String()), nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "method %s", method)
	}
}

func (p *Protocol) donationLog(ctx context.Context, total *uint256.Int) *action.Log {
	actionCtx := protocol.MustGetActionCtx(ctx)
	amount := actionCtx.Amount
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	l := &action.Log{
		Address: p.addr.String(),
		Topics: []hash.Hash256{
			hash.Hash256b([]byte(action.DonateMethod)),
			hash.BytesToHash256(actionCtx.Caller.Bytes()),
		},
		Data:       append(amount.PaddedBytes(32), total.PaddedBytes(32)...),
		ActionHash: actionCtx.ActionHash,
	}
	if blkCtx, ok := protocol.GetBlockCtx(ctx); ok {
		l.BlockHeight = blkCtx.BlockHeight
	}
	return l
}

func (p *Protocol) createReceipt(ctx context.Context, ret []byte, logs ...*action.Log) *action.Receipt {
	receipt := &action.Receipt{
		Status:          action.SuccessReceiptStatus,
		ContractAddress: p.addr.String(),
		ReturnValue:     ret,
	}
	if actionCtx, ok := protocol.GetActionCtx(ctx); ok {
		receipt.ActionHash = actionCtx.ActionHash
	}
	if blkCtx, ok := protocol.GetBlockCtx(ctx); ok {
		receipt.BlockHeight = blkCtx.BlockHeight
	}
	return receipt.AddLogs(logs...)
}

func (p *Protocol) state(sm protocol.StateReader, key []byte, value interface{}) error {
	_, err := sm.State(value, protocol.NamespaceOption(_protocolNamespace), protocol.KeyOption(p.keyHash(key)))
	return err
}

func (p *Protocol) putState(sm protocol.StateManager, key []byte, value interface{}) error {
	_, err := sm.PutState(value, protocol.NamespaceOption(_protocolNamespace), protocol.KeyOption(p.keyHash(key)))
	return err
}

func (p *Protocol) keyHash(key []byte) []byte {
	h := hash.Hash160b(append(append([]byte{}, p.keyPrefix...), key...))
	return h[:]
}

// isStateNotExist tells if err means the state is absent
func isStateNotExist(err error) bool {
	return errors.Cause(err) == state.ErrStateNotExist
}
