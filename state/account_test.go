// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestEncodeDecode(t *testing.T) {
	r := require.New(t)
	s1 := NewEmptyAccount()
	r.NoError(s1.AddBalance(uint256.NewInt(20)))
	s1.IncreaseNonce()
	ss, err := s1.Serialize()
	r.NoError(err)
	r.NotEmpty(ss)
	meta := &iotextypes.AccountMeta{}
	r.NoError(proto.Unmarshal(ss, meta))
	r.Equal("20", meta.GetBalance())
	r.Equal(uint64(1), meta.GetNonce())

	s2 := Account{}
	r.NoError(s2.Deserialize(ss))
	r.Equal(uint64(1), s2.Nonce())
	r.Equal("20", s2.Balance.Dec())

	r.Error(s2.Deserialize([]byte{0xff, 0xff}))
}

func TestBalance(t *testing.T) {
	r := require.New(t)
	acct := NewEmptyAccount()
	r.NoError(acct.AddBalance(uint256.NewInt(20)))
	r.NoError(acct.AddBalance(uint256.NewInt(30)))
	r.Equal(uint64(50), acct.Balance.Uint64())

	r.True(acct.HasSufficientBalance(uint256.NewInt(50)))
	r.False(acct.HasSufficientBalance(uint256.NewInt(51)))
	r.NoError(acct.SubBalance(uint256.NewInt(40)))
	r.Equal(uint64(10), acct.Balance.Uint64())
	err := acct.SubBalance(uint256.NewInt(11))
	r.Equal(ErrNotEnoughBalance, errors.Cause(err))
	r.Equal(uint64(10), acct.Balance.Uint64())

	max := new(uint256.Int).SetAllOne()
	r.Error(acct.AddBalance(max))
}

func TestClone(t *testing.T) {
	r := require.New(t)
	acct := NewEmptyAccount()
	r.NoError(acct.AddBalance(uint256.NewInt(7)))
	clone := acct.Clone()
	r.NoError(clone.AddBalance(uint256.NewInt(1)))
	r.Equal(uint64(7), acct.Balance.Uint64())
	r.Equal(uint64(8), clone.Balance.Uint64())
}

func TestSerializeNonSerializer(t *testing.T) {
	r := require.New(t)
	_, err := Serialize(struct{}{})
	r.Equal(ErrStateSerialization, errors.Cause(err))
	r.Equal(ErrStateDeserialization, errors.Cause(Deserialize(&struct{}{}, nil)))
}
