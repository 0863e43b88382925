// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package state

import (
	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

// Account is the canonical representation of an account.
type Account struct {
	// nonce counts the outgoing settlements of this account
	nonce   uint64
	Balance *uint256.Int
}

// NewEmptyAccount returns an account with zero balance
func NewEmptyAccount() *Account {
	return &Account{
		Balance: uint256.NewInt(0),
	}
}

// toProto converts to protobuf's AccountMeta
func (st *Account) toProto() *iotextypes.AccountMeta {
	acPb := &iotextypes.AccountMeta{}
	acPb.Nonce = st.nonce
	if st.Balance != nil {
		acPb.Balance = st.Balance.Dec()
	}
	return acPb
}

// Serialize serializes account state into bytes
func (st *Account) Serialize() ([]byte, error) {
	return proto.Marshal(st.toProto())
}

// fromProto converts from protobuf's AccountMeta
func (st *Account) fromProto(acPb *iotextypes.AccountMeta) error {
	st.nonce = acPb.Nonce
	if acPb.Balance == "" {
		st.Balance = uint256.NewInt(0)
		return nil
	}
	balance, err := uint256.FromDecimal(acPb.Balance)
	if err != nil {
		return errors.Wrapf(err, "failed to parse balance %s", acPb.Balance)
	}
	st.Balance = balance
	return nil
}

// Deserialize deserializes bytes into account state
func (st *Account) Deserialize(buf []byte) error {
	acPb := &iotextypes.AccountMeta{}
	if err := proto.Unmarshal(buf, acPb); err != nil {
		return errors.Wrap(ErrStateDeserialization, err.Error())
	}
	return st.fromProto(acPb)
}

// Nonce returns the nonce of the account
func (st *Account) Nonce() uint64 {
	return st.nonce
}

// IncreaseNonce bumps the nonce by one
func (st *Account) IncreaseNonce() {
	st.nonce++
}

// HasSufficientBalance returns true if balance is larger than amount
func (st *Account) HasSufficientBalance(amount *uint256.Int) bool {
	if amount == nil {
		return true
	}
	return !amount.Gt(st.Balance)
}

// AddBalance adds balance for account state
func (st *Account) AddBalance(amount *uint256.Int) error {
	if amount == nil {
		return nil
	}
	sum, overflow := new(uint256.Int).AddOverflow(st.Balance, amount)
	if overflow {
		return errors.Errorf("balance overflow adding %s", amount.Dec())
	}
	st.Balance = sum
	return nil
}

// SubBalance subtracts balance for account state
func (st *Account) SubBalance(amount *uint256.Int) error {
	if amount == nil {
		return nil
	}
	if !st.HasSufficientBalance(amount) {
		return errors.Wrapf(ErrNotEnoughBalance, "balance %s, amount %s", st.Balance.Dec(), amount.Dec())
	}
	st.Balance = new(uint256.Int).Sub(st.Balance, amount)
	return nil
}

// Clone clones the account state
func (st *Account) Clone() *Account {
	s := *st
	if st.Balance != nil {
		s.Balance = st.Balance.Clone()
	}
	return &s
}
