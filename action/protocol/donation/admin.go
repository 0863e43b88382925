// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"context"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/pkg/log"
)

// Construct initializes the contract state with beneficiary and an empty ledger
func (p *Protocol) Construct(ctx context.Context, sm protocol.StateManager, beneficiary address.Address) error {
	if beneficiary == nil {
		return errors.New("beneficiary is nil")
	}
	initialized, err := p.Initialized(ctx, sm)
	if err != nil {
		return err
	}
	if initialized {
		return ErrContractAlreadyInitialized
	}
	return p.initialize(sm, beneficiary)
}

// CreateGenesisStates initializes the contract with the default beneficiary, it is a no-op on an initialized contract
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	initialized, err := p.Initialized(ctx, sm)
	if err != nil || initialized {
		return err
	}
	log.L().Info("Initialize the donation contract with the default beneficiary.",
		zap.String("contract", p.addr.String()),
		zap.String("beneficiary", p.defaultBeneficiary.String()))
	return p.initialize(sm, p.defaultBeneficiary)
}

// Initialized returns true if the contract state exists
func (p *Protocol) Initialized(ctx context.Context, sm protocol.StateReader) (bool, error) {
	b := beneficiary{}
	err := p.state(sm, _beneficiaryKey, &b)
	switch {
	case err == nil:
		return true, nil
	case isStateNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// ChangeBeneficiary overwrites the beneficiary. Only the contract owner may call it, which the host enforces.
func (p *Protocol) ChangeBeneficiary(ctx context.Context, sm protocol.StateManager, addr address.Address) error {
	if addr == nil {
		return errors.New("beneficiary is nil")
	}
	if _, err := p.beneficiary(sm); err != nil {
		return err
	}
	return p.putState(sm, _beneficiaryKey, &beneficiary{addr: addr})
}

// Beneficiary returns the current beneficiary. An uninitialized contract reports the default beneficiary.
func (p *Protocol) Beneficiary(ctx context.Context, sr protocol.StateReader) (address.Address, error) {
	addr, err := p.beneficiary(sr)
	if errors.Cause(err) == ErrContractNotInitialized {
		return p.defaultBeneficiary, nil
	}
	return addr, err
}

func (p *Protocol) beneficiary(sr protocol.StateReader) (address.Address, error) {
	b := beneficiary{}
	if err := p.state(sr, _beneficiaryKey, &b); err != nil {
		if isStateNotExist(err) {
			return nil, errors.Wrapf(ErrContractNotInitialized, "contract %s", p.addr.String())
		}
		return nil, err
	}
	return b.addr, nil
}

func (p *Protocol) initialize(sm protocol.StateManager, addr address.Address) error {
	if err := p.putState(sm, _beneficiaryKey, &beneficiary{addr: addr}); err != nil {
		return err
	}
	c := counter(0)
	return p.putState(sm, _countKey, &c)
}
