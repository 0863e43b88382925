// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/state"
	"github.com/iotexproject/iotex-donation/testutil"
)

var (
	_testNS  = "Account"
	_testKey = []byte("alfa")
)

func testFactories(t *testing.T, test func(*testing.T, Factory)) {
	t.Run("memory", func(t *testing.T) {
		sf, err := NewFactory(db.NewMemKVStore())
		require.NoError(t, err)
		test(t, sf)
	})
	t.Run("boltdb", func(t *testing.T) {
		cfg := db.DefaultConfig
		cfg.DbPath = testutil.PathOfTempDir(t, "state.db")
		sf, err := NewFactory(db.NewBoltDB(cfg))
		require.NoError(t, err)
		test(t, sf)
	})
}

func accountWithBalance(t *testing.T, balance uint64) *state.Account {
	acct := state.NewEmptyAccount()
	require.NoError(t, acct.AddBalance(uint256.NewInt(balance)))
	return acct
}

func TestFactoryCommit(t *testing.T) {
	testFactories(t, func(t *testing.T, sf Factory) {
		r := require.New(t)
		ctx := context.Background()
		r.NoError(sf.Start(ctx))
		defer func() {
			r.NoError(sf.Stop(ctx))
		}()
		h, err := sf.Height()
		r.NoError(err)
		r.Zero(h)

		opts := []protocol.StateOption{protocol.NamespaceOption(_testNS), protocol.KeyOption(_testKey)}
		_, err = sf.State(&state.Account{}, opts...)
		r.Equal(state.ErrStateNotExist, errors.Cause(err))

		ws, err := sf.NewWorkingSet(ctx)
		r.NoError(err)
		h, err = ws.Height()
		r.NoError(err)
		r.EqualValues(1, h)
		_, err = ws.PutState(accountWithBalance(t, 10), opts...)
		r.NoError(err)

		// staged writes are visible to the working set only
		acct := &state.Account{}
		_, err = ws.State(acct, opts...)
		r.NoError(err)
		r.Equal("10", acct.Balance.Dec())
		_, err = sf.State(&state.Account{}, opts...)
		r.Equal(state.ErrStateNotExist, errors.Cause(err))

		r.NoError(sf.Commit(ctx, ws))
		h, err = sf.Height()
		r.NoError(err)
		r.EqualValues(1, h)
		acct = &state.Account{}
		h, err = sf.State(acct, opts...)
		r.NoError(err)
		r.EqualValues(1, h)
		r.Equal("10", acct.Balance.Dec())

		// delete is applied on commit
		ws, err = sf.NewWorkingSet(ctx)
		r.NoError(err)
		_, err = ws.DelState(opts...)
		r.NoError(err)
		_, err = ws.State(&state.Account{}, opts...)
		r.Equal(state.ErrStateNotExist, errors.Cause(err))
		r.NoError(sf.Commit(ctx, ws))
		_, err = sf.State(&state.Account{}, opts...)
		r.Equal(state.ErrStateNotExist, errors.Cause(err))
	})
}

func TestWorkingSetRevert(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	sf, err := NewFactory(db.NewMemKVStore())
	r.NoError(err)
	r.NoError(sf.Start(ctx))
	defer func() {
		r.NoError(sf.Stop(ctx))
	}()

	opts := []protocol.StateOption{protocol.KeyOption(_testKey)}
	ws, err := sf.NewWorkingSet(ctx)
	r.NoError(err)
	_, err = ws.PutState(accountWithBalance(t, 1), opts...)
	r.NoError(err)
	sn := ws.Snapshot()
	_, err = ws.PutState(accountWithBalance(t, 2), opts...)
	r.NoError(err)
	r.NoError(ws.Revert(sn))
	acct := &state.Account{}
	_, err = ws.State(acct, opts...)
	r.NoError(err)
	r.Equal("1", acct.Balance.Dec())
	r.Error(ws.Revert(sn + 5))

	// a missing key is rejected
	_, err = ws.State(acct)
	r.Error(err)
	_, err = ws.PutState(acct)
	r.Error(err)
}

func TestFactoryStaleWorkingSet(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	sf, err := NewFactory(db.NewMemKVStore())
	r.NoError(err)
	r.NoError(sf.Start(ctx))
	defer func() {
		r.NoError(sf.Stop(ctx))
	}()

	ws1, err := sf.NewWorkingSet(ctx)
	r.NoError(err)
	ws2, err := sf.NewWorkingSet(ctx)
	r.NoError(err)
	r.NoError(sf.Commit(ctx, ws1))
	r.Equal(ErrStaleWorkingSet, errors.Cause(sf.Commit(ctx, ws2)))
	r.Equal(ErrNilWorkingSet, sf.Commit(ctx, nil))

	_, err = NewFactory(nil)
	r.Error(err)
}

func TestFactoryReopen(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	cfg := db.DefaultConfig
	cfg.DbPath = testutil.PathOfTempDir(t, "reopen.db")

	opts := []protocol.StateOption{protocol.NamespaceOption(_testNS), protocol.KeyOption(_testKey)}
	sf, err := NewFactory(db.NewBoltDB(cfg))
	r.NoError(err)
	r.NoError(sf.Start(ctx))
	for i := uint64(1); i <= 3; i++ {
		ws, err := sf.NewWorkingSet(ctx)
		r.NoError(err)
		_, err = ws.PutState(accountWithBalance(t, i), opts...)
		r.NoError(err)
		r.NoError(sf.Commit(ctx, ws))
	}
	r.NoError(sf.Stop(ctx))

	sf, err = NewFactory(db.NewBoltDB(cfg))
	r.NoError(err)
	r.NoError(sf.Start(ctx))
	defer func() {
		r.NoError(sf.Stop(ctx))
	}()
	h, err := sf.Height()
	r.NoError(err)
	r.EqualValues(3, h)
	acct := &state.Account{}
	_, err = sf.State(acct, opts...)
	r.NoError(err)
	r.Equal("3", acct.Balance.Dec())
}
