// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
)

const (
	// ConstructMethod is the name of the one-time initialization method
	ConstructMethod = "new"
	// DonateMethod is the name of the value-bearing donation method
	DonateMethod = "donate"
	// ChangeBeneficiaryMethod is the name of the privileged reconfiguration method
	ChangeBeneficiaryMethod = "change_beneficiary"

	_selectorLen = 4
	// byte length of an io1 address
	_addressLength = 20
)

var (
	// ErrInvalidAddress is the error of an empty or malformed account identifier
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidSelector is the error of call data that does not start with a known method selector
	ErrInvalidSelector = errors.New("invalid method selector")
)

type (
	// Action is the action can be executed against the donation contract
	Action interface {
		// Method returns the name of the contract method the action invokes
		Method() string
		// Data returns the call data: method selector followed by the encoded arguments
		Data() []byte
		// SanityCheck validates the variables in the action
		SanityCheck() error
	}

	// PrivilegedAction is an action only the contract owner may run
	PrivilegedAction interface {
		Action
		privileged()
	}
)

// Selector returns the 4-byte selector of a method
func Selector(method string) []byte {
	h := hash.Hash256b([]byte(method))
	return h[:_selectorLen]
}

func callData(method string, args ...[]byte) []byte {
	data := Selector(method)
	for _, arg := range args {
		data = append(data, arg...)
	}
	return data
}

// DecodeAction parses call data back into an action
func DecodeAction(data []byte) (Action, error) {
	if len(data) < _selectorLen {
		return nil, errors.Wrapf(ErrInvalidSelector, "data length %d", len(data))
	}
	selector, args := string(data[:_selectorLen]), data[_selectorLen:]
	switch selector {
	case string(Selector(DonateMethod)):
		return NewDonate(), nil
	case string(Selector(ConstructMethod)):
		addr, err := decodeAddress(args)
		if err != nil {
			return nil, err
		}
		return NewConstruct(addr), nil
	case string(Selector(ChangeBeneficiaryMethod)):
		addr, err := decodeAddress(args)
		if err != nil {
			return nil, err
		}
		return NewChangeBeneficiary(addr), nil
	}
	return nil, errors.Wrapf(ErrInvalidSelector, "selector %x", data[:_selectorLen])
}

// decodeAddress requires exactly one address worth of bytes, FromBytes pads or truncates anything else
func decodeAddress(b []byte) (address.Address, error) {
	if len(b) != _addressLength {
		return nil, errors.Wrapf(ErrInvalidAddress, "address length %d", len(b))
	}
	addr, err := address.FromBytes(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	return addr, nil
}
