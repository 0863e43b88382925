// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// beneficiary stores the single recipient of the forwarded donations
type beneficiary struct {
	addr address.Address
}

// Serialize serializes beneficiary state into bytes
func (b beneficiary) Serialize() ([]byte, error) {
	return proto.Marshal(wrapperspb.String(b.addr.String()))
}

// Deserialize deserializes bytes into beneficiary state
func (b *beneficiary) Deserialize(data []byte) error {
	gen := wrapperspb.StringValue{}
	if err := proto.Unmarshal(data, &gen); err != nil {
		return err
	}
	addr, err := address.FromString(gen.GetValue())
	if err != nil {
		return errors.Wrapf(err, "failed to decode beneficiary %s", gen.GetValue())
	}
	b.addr = addr
	return nil
}

// counter stores the number of distinct donors
type counter uint64

// Serialize serializes counter state into bytes
func (c counter) Serialize() ([]byte, error) {
	return proto.Marshal(wrapperspb.UInt64(uint64(c)))
}

// Deserialize deserializes bytes into counter state
func (c *counter) Deserialize(data []byte) error {
	gen := wrapperspb.UInt64Value{}
	if err := proto.Unmarshal(data, &gen); err != nil {
		return err
	}
	*c = counter(gen.GetValue())
	return nil
}

// amount stores the cumulative figure of a donor
type amount struct {
	value *uint256.Int
}

// Serialize serializes amount state into bytes
func (a amount) Serialize() ([]byte, error) {
	if !fitsAmount(a.value) {
		return nil, ErrAmountOverflow
	}
	return proto.Marshal(wrapperspb.String(a.value.Dec()))
}

// Deserialize deserializes bytes into amount state
func (a *amount) Deserialize(data []byte) error {
	gen := wrapperspb.StringValue{}
	if err := proto.Unmarshal(data, &gen); err != nil {
		return err
	}
	v, err := uint256.FromDecimal(gen.GetValue())
	if err != nil {
		return errors.Wrapf(err, "failed to decode amount %s", gen.GetValue())
	}
	if !fitsAmount(v) {
		return errors.Wrapf(ErrAmountOverflow, "stored amount %s", gen.GetValue())
	}
	a.value = v
	return nil
}

// fitsAmount tells if v is a valid 128-bit amount
func fitsAmount(v *uint256.Int) bool {
	return v != nil && v.BitLen() <= 128
}
