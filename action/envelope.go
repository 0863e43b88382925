// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/holiman/uint256"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"github.com/iotexproject/iotex-donation/pkg/log"
)

const _envelopeVersion = 1

// ErrNilAction is the error of an envelope carrying no action
var ErrNilAction = errors.New("nil action")

// Envelope wraps an action with the host supplied call metadata: who calls and how much value is attached
type Envelope struct {
	caller address.Address
	amount *uint256.Int
	nonce  uint64
	action Action
}

// NewEnvelope creates an envelope, a nil amount means no attached value
func NewEnvelope(caller address.Address, amount *uint256.Int, act Action) *Envelope {
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	return &Envelope{
		caller: caller,
		amount: amount.Clone(),
		action: act,
	}
}

// Caller returns the caller address
func (elp *Envelope) Caller() address.Address { return elp.caller }

// Amount returns the attached value
func (elp *Envelope) Amount() *uint256.Int { return elp.amount.Clone() }

// Nonce returns the call nonce
func (elp *Envelope) Nonce() uint64 { return elp.nonce }

// WithNonce returns a copy of the envelope carrying the call nonce, the receiver is left untouched
func (elp *Envelope) WithNonce(n uint64) *Envelope {
	c := *elp
	c.nonce = n
	return &c
}

// Action returns the wrapped action
func (elp *Envelope) Action() Action { return elp.action }

// SanityCheck validates the envelope and its action
func (elp *Envelope) SanityCheck() error {
	if elp.caller == nil {
		return errors.Wrap(ErrInvalidAddress, "missing caller")
	}
	if elp.action == nil {
		return ErrNilAction
	}
	return elp.action.SanityCheck()
}

// Proto converts the envelope into a protobuf action core, the call is encoded as a contract execution
func (elp *Envelope) Proto(contract string) *iotextypes.ActionCore {
	return &iotextypes.ActionCore{
		Version: _envelopeVersion,
		Nonce:   elp.nonce,
		Action: &iotextypes.ActionCore_Execution{
			Execution: &iotextypes.Execution{
				Amount:   elp.amount.Dec(),
				Contract: contract,
				Data:     elp.action.Data(),
			},
		},
	}
}

// Hash returns the hash of the call made to contract
func (elp *Envelope) Hash(contract string) hash.Hash256 {
	core, err := proto.Marshal(elp.Proto(contract))
	if err != nil {
		log.L().Panic("Error when serializing an envelope.")
	}
	return hash.Hash256b(append(addrBytes(elp.caller), core...))
}

// LoadProto restores an envelope sent by caller from its protobuf action core
func LoadProto(caller address.Address, pbAct *iotextypes.ActionCore) (*Envelope, error) {
	exec := pbAct.GetExecution()
	if exec == nil {
		return nil, errors.New("action core is not a contract execution")
	}
	amount, err := uint256.FromDecimal(exec.GetAmount())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %s", exec.GetAmount())
	}
	act, err := DecodeAction(exec.GetData())
	if err != nil {
		return nil, err
	}
	return NewEnvelope(caller, amount, act).WithNonce(pbAct.GetNonce()), nil
}
