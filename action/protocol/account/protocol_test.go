// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iotexproject/iotex-donation/action/protocol"
	accountutil "github.com/iotexproject/iotex-donation/action/protocol/account/util"
	"github.com/iotexproject/iotex-donation/state"
	"github.com/iotexproject/iotex-donation/test/identityset"
	"github.com/iotexproject/iotex-donation/testutil"
)

func TestProtocol_DepositAndTransfer(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	sm := testutil.NewMockStateManager(ctrl)
	ctx := context.Background()
	p := NewProtocol()

	caller := identityset.Address(0)
	contract := identityset.Address(10)
	beneficiary := identityset.Address(1)

	// zero deposit moves nothing
	tLog, err := p.Deposit(ctx, sm, caller, contract, uint256.NewInt(0))
	require.NoError(err)
	require.Nil(tLog)

	tLog, err = p.Deposit(ctx, sm, caller, contract, uint256.NewInt(100))
	require.NoError(err)
	require.Equal(iotextypes.TransactionLogType_NATIVE_TRANSFER, tLog.Type)
	require.Equal(contract.String(), tLog.Recipient)

	tLog, err = p.Transfer(ctx, sm, contract, beneficiary, uint256.NewInt(60))
	require.NoError(err)
	require.Equal(iotextypes.TransactionLogType_IN_CONTRACT_TRANSFER, tLog.Type)
	require.Equal("60", tLog.Amount.Dec())

	acct, err := accountutil.AccountState(sm, contract)
	require.NoError(err)
	require.Equal(uint64(40), acct.Balance.Uint64())
	require.Equal(uint64(1), acct.Nonce())
	acct, err = accountutil.AccountState(sm, beneficiary)
	require.NoError(err)
	require.Equal(uint64(60), acct.Balance.Uint64())

	// not enough balance leaves both accounts untouched
	_, err = p.Transfer(ctx, sm, contract, beneficiary, uint256.NewInt(41))
	require.Equal(state.ErrNotEnoughBalance, errors.Cause(err))
	acct, err = accountutil.AccountState(sm, contract)
	require.NoError(err)
	require.Equal(uint64(40), acct.Balance.Uint64())
}

func TestProtocol_ReadState(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	sm := testutil.NewMockStateManager(ctrl)
	ctx := context.Background()
	p := NewProtocol()
	addr := identityset.Address(2)

	out, err := p.ReadState(ctx, sm, []byte(BalanceMethod), []byte(addr.String()))
	require.NoError(err)
	require.Equal("0", string(out))

	_, err = p.Deposit(ctx, sm, identityset.Address(0), addr, uint256.NewInt(7))
	require.NoError(err)
	out, err = p.ReadState(ctx, sm, []byte(BalanceMethod), []byte(addr.String()))
	require.NoError(err)
	require.Equal("7", string(out))
	out, err = p.ReadState(ctx, sm, []byte(NonceMethod), []byte(addr.String()))
	require.NoError(err)
	require.Equal("0", string(out))

	_, err = p.ReadState(ctx, sm, []byte("Unknown"), []byte(addr.String()))
	require.Error(err)
	_, err = p.ReadState(ctx, sm, []byte(BalanceMethod))
	require.Error(err)
	_, err = p.ReadState(ctx, sm, []byte(BalanceMethod), []byte("io1invalid"))
	require.Error(err)
}

func TestFindProtocol(t *testing.T) {
	require := require.New(t)
	require.Nil(FindProtocol(nil))
	reg := protocol.NewRegistry()
	require.Nil(FindProtocol(reg))
	p := NewProtocol()
	require.NoError(p.Register(reg))
	require.Equal(p, FindProtocol(reg))
}
