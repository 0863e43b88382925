// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggers(t *testing.T) {
	r := require.New(t)

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.OutputPaths = []string{"stdout"}
	r.NoError(InitLoggers(GlobalConfig{Zap: &zapCfg}, map[string]GlobalConfig{
		"settlement": {},
	}))
	r.NotNil(L())
	r.NotNil(S())
	r.NotNil(Logger("settlement"))
	// unknown sub logger falls back to a named global logger
	r.NotNil(Logger("unknown"))
	r.Equal("address", Hex("address", []byte{0x01}).Key)
	r.Equal("01", Hex("address", []byte{0x01}).String)
}
