// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/test/identityset"
)

func TestEnvelope(t *testing.T) {
	r := require.New(t)
	caller := identityset.Address(0)
	contract := identityset.Address(10).String()
	amount := uint256.NewInt(100)

	elp := NewEnvelope(caller, amount, NewDonate())
	amount.SetUint64(1)
	r.Equal(uint64(100), elp.Amount().Uint64())
	r.Equal(caller, elp.Caller())
	r.NoError(elp.SanityCheck())

	h1 := elp.Hash(contract)
	r.Equal(h1, elp.Hash(contract))
	nonced := elp.WithNonce(1)
	r.Zero(elp.Nonce())
	r.Equal(h1, elp.Hash(contract))
	elp = nonced
	h2 := elp.Hash(contract)
	r.NotEqual(h1, h2)
	// same call by another caller hashes differently
	other := NewEnvelope(identityset.Address(1), uint256.NewInt(100), NewDonate()).WithNonce(1)
	r.NotEqual(h2, other.Hash(contract))

	pb := elp.Proto(contract)
	r.Equal(uint64(1), pb.GetNonce())
	r.Equal("100", pb.GetExecution().GetAmount())
	r.Equal(contract, pb.GetExecution().GetContract())

	loaded, err := LoadProto(caller, pb)
	r.NoError(err)
	r.Equal(h2, loaded.Hash(contract))

	r.Zero(NewEnvelope(caller, nil, NewDonate()).Amount().Uint64())
}
