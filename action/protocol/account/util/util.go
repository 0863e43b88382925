// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package accountutil

import (
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/state"
)

// AccountKVNamespace is the bucket name for account
const AccountKVNamespace = "Account"

// LoadOrCreateAccount either loads an account state or creates an empty account state
func LoadOrCreateAccount(sm protocol.StateReader, addr address.Address) (*state.Account, error) {
	if addr == nil {
		return nil, errors.New("nil address")
	}
	account := state.Account{}
	_, err := sm.State(&account, protocol.NamespaceOption(AccountKVNamespace), protocol.KeyOption(accountKey(addr)))
	switch errors.Cause(err) {
	case nil:
		return &account, nil
	case state.ErrStateNotExist:
		return state.NewEmptyAccount(), nil
	default:
		return nil, errors.Wrapf(err, "failed to load account of %s", addr.String())
	}
}

// AccountState returns the confirmed account state on the chain, an unknown address has an empty account
func AccountState(sr protocol.StateReader, addr address.Address) (*state.Account, error) {
	return LoadOrCreateAccount(sr, addr)
}

// StoreAccount puts updated account state to trie
func StoreAccount(sm protocol.StateManager, addr address.Address, account *state.Account) error {
	_, err := sm.PutState(account, protocol.NamespaceOption(AccountKVNamespace), protocol.KeyOption(accountKey(addr)))
	return err
}

func accountKey(addr address.Address) []byte {
	h := hash.BytesToHash160(addr.Bytes())
	return h[:]
}
