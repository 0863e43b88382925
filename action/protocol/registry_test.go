// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/test/mock/mock_protocol"
)

func TestRegister(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	reg := protocol.NewRegistry()
	p := mock_protocol.NewMockProtocol(ctrl)
	// Case I: Normal
	require.NoError(reg.Register("1", p))
	// Case II: Protocol with ID is already registered
	require.Error(reg.Register("1", p))
}

func TestFind(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	reg := protocol.NewRegistry()
	p := mock_protocol.NewMockProtocol(ctrl)
	require.NoError(reg.Register("1", p))
	// Case I: Normal
	found, ok := reg.Find("1")
	require.True(ok)
	require.Equal(p, found)
	// Case II: Not exist
	_, ok = reg.Find("0")
	require.False(ok)
}

func TestAll(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	reg := protocol.NewRegistry()
	p1 := mock_protocol.NewMockProtocol(ctrl)
	p2 := mock_protocol.NewMockProtocol(ctrl)
	require.NoError(reg.Register("2", p1))
	require.NoError(reg.Register("1", p2))
	all := reg.All()
	require.Equal(2, len(all))
	require.Equal(p1, all[0])
	require.Equal(p2, all[1])
}
