// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-address/address"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action"
	"github.com/iotexproject/iotex-donation/action/protocol"
	accountutil "github.com/iotexproject/iotex-donation/action/protocol/account/util"
	"github.com/iotexproject/iotex-donation/state"
)

// Deposit credits the value the caller attached to a call onto the contract account
func (p *Protocol) Deposit(
	_ context.Context,
	sm protocol.StateManager,
	caller address.Address,
	contract address.Address,
	amount *uint256.Int,
) (*action.TransactionLog, error) {
	if amount == nil || amount.IsZero() {
		return nil, nil
	}
	acct, err := accountutil.LoadOrCreateAccount(sm, contract)
	if err != nil {
		return nil, err
	}
	if err := acct.AddBalance(amount); err != nil {
		return nil, errors.Wrapf(err, "failed to add balance %s", amount.Dec())
	}
	if err := accountutil.StoreAccount(sm, contract, acct); err != nil {
		return nil, errors.Wrap(err, "failed to update pending account changes to trie")
	}
	return &action.TransactionLog{
		Type:      iotextypes.TransactionLogType_NATIVE_TRANSFER,
		Sender:    caller.String(),
		Recipient: contract.String(),
		Amount:    amount,
	}, nil
}

// Transfer moves amount from sender to recipient, failing with state.ErrNotEnoughBalance when sender cannot fund it
func (p *Protocol) Transfer(
	_ context.Context,
	sm protocol.StateManager,
	sender address.Address,
	recipient address.Address,
	amount *uint256.Int,
) (*action.TransactionLog, error) {
	from, err := accountutil.LoadOrCreateAccount(sm, sender)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load or create the account of sender %s", sender.String())
	}
	if !from.HasSufficientBalance(amount) {
		return nil, errors.Wrapf(
			state.ErrNotEnoughBalance,
			"sender %s balance %s, required amount %s",
			sender.String(),
			from.Balance.Dec(),
			amount.Dec(),
		)
	}
	// update sender Balance
	if err := from.SubBalance(amount); err != nil {
		return nil, errors.Wrapf(err, "failed to update the Balance of sender %s", sender.String())
	}
	from.IncreaseNonce()
	// put updated sender's state to trie
	if err := accountutil.StoreAccount(sm, sender, from); err != nil {
		return nil, errors.Wrap(err, "failed to update pending account changes to trie")
	}
	// check recipient
	to, err := accountutil.LoadOrCreateAccount(sm, recipient)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load or create the account of recipient %s", recipient.String())
	}
	if err := to.AddBalance(amount); err != nil {
		return nil, errors.Wrapf(err, "failed to add balance %s", amount.Dec())
	}
	// put updated recipient's state to trie
	if err := accountutil.StoreAccount(sm, recipient, to); err != nil {
		return nil, errors.Wrap(err, "failed to update pending account changes to trie")
	}
	return &action.TransactionLog{
		Type:      iotextypes.TransactionLogType_IN_CONTRACT_TRANSFER,
		Sender:    sender.String(),
		Recipient: recipient.String(),
		Amount:    amount,
	}, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
