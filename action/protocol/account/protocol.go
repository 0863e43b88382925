// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action"
	"github.com/iotexproject/iotex-donation/action/protocol"
	accountutil "github.com/iotexproject/iotex-donation/action/protocol/account/util"
)

const (
	// protocolID is the protocol ID
	protocolID = "account"

	// BalanceMethod reads the balance of an address
	BalanceMethod = "Balance"
	// NonceMethod reads the nonce of an address
	NonceMethod = "Nonce"
)

// Protocol defines the protocol of handling account
type Protocol struct{}

// NewProtocol instantiates the protocol of account
func NewProtocol() *Protocol { return &Protocol{} }

// Name returns the name of protocol
func (p *Protocol) Name() string { return protocolID }

// Handle handles an account. Value moves through Deposit and Transfer, so no action is handled here.
func (p *Protocol) Handle(context.Context, action.Action, protocol.StateManager) (*action.Receipt, error) {
	return nil, nil
}

// ReadState read the state on blockchain via protocol
func (p *Protocol) ReadState(ctx context.Context, sr protocol.StateReader, method []byte, args ...[]byte) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("invalid number of arguments %d", len(args))
	}
	addr, err := address.FromString(string(args[0]))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address %s", args[0])
	}
	acct, err := accountutil.AccountState(sr, addr)
	if err != nil {
		return nil, err
	}
	switch string(method) {
	case BalanceMethod:
		return []byte(acct.Balance.Dec()), nil
	case NonceMethod:
		return []byte(formatUint(acct.Nonce())), nil
	default:
		return nil, errors.Errorf("unknown method %s", method)
	}
}

// FindProtocol finds the registered protocol from registry
func FindProtocol(registry *protocol.Registry) *Protocol {
	if registry == nil {
		return nil
	}
	p, ok := registry.Find(protocolID)
	if !ok {
		return nil
	}
	ap, ok := p.(*Protocol)
	if !ok {
		return nil
	}
	return ap
}

// Register registers the protocol with a unique ID
func (p *Protocol) Register(r *protocol.Registry) error {
	return r.Register(protocolID, p)
}
