// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/iotexproject/iotex-address/address"
)

var (
	_ Action           = (*Donate)(nil)
	_ PrivilegedAction = (*Construct)(nil)
	_ PrivilegedAction = (*ChangeBeneficiary)(nil)
)

// Donate is the action to donate the attached value. It carries no payload, the amount comes from the envelope.
type Donate struct{}

// NewDonate returns a donate action
func NewDonate() *Donate { return &Donate{} }

// Method returns the method name
func (d *Donate) Method() string { return DonateMethod }

// Data returns the call data
func (d *Donate) Data() []byte { return callData(DonateMethod) }

// SanityCheck validates the variables in the action
func (d *Donate) SanityCheck() error { return nil }

// Construct is the action to initialize the contract state with a beneficiary
type Construct struct {
	beneficiary address.Address
}

// NewConstruct returns a construct action
func NewConstruct(beneficiary address.Address) *Construct {
	return &Construct{beneficiary: beneficiary}
}

// Beneficiary returns the initial beneficiary
func (c *Construct) Beneficiary() address.Address { return c.beneficiary }

// Method returns the method name
func (c *Construct) Method() string { return ConstructMethod }

// Data returns the call data
func (c *Construct) Data() []byte { return callData(ConstructMethod, addrBytes(c.beneficiary)) }

// SanityCheck validates the variables in the action
func (c *Construct) SanityCheck() error { return checkAddress(c.beneficiary) }

func (c *Construct) privileged() {}

// ChangeBeneficiary is the action to replace the beneficiary
type ChangeBeneficiary struct {
	beneficiary address.Address
}

// NewChangeBeneficiary returns a change beneficiary action
func NewChangeBeneficiary(beneficiary address.Address) *ChangeBeneficiary {
	return &ChangeBeneficiary{beneficiary: beneficiary}
}

// Beneficiary returns the new beneficiary
func (c *ChangeBeneficiary) Beneficiary() address.Address { return c.beneficiary }

// Method returns the method name
func (c *ChangeBeneficiary) Method() string { return ChangeBeneficiaryMethod }

// Data returns the call data
func (c *ChangeBeneficiary) Data() []byte {
	return callData(ChangeBeneficiaryMethod, addrBytes(c.beneficiary))
}

// SanityCheck validates the variables in the action
func (c *ChangeBeneficiary) SanityCheck() error { return checkAddress(c.beneficiary) }

func (c *ChangeBeneficiary) privileged() {}

func addrBytes(addr address.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func checkAddress(addr address.Address) error {
	if addr == nil {
		return ErrInvalidAddress
	}
	return nil
}
