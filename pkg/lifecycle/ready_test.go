// Copyright (c) 2021 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package lifecycle

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	r := require.New(t)

	var ready Readiness
	r.False(ready.IsReady())
	r.Equal(ErrWrongState, errors.Cause(ready.TurnOff()))

	r.NoError(ready.TurnOn())
	r.True(ready.IsReady())
	r.Equal(ErrWrongState, errors.Cause(ready.TurnOn()))

	r.NoError(ready.TurnOff())
	r.False(ready.IsReady())

	// restart after stop
	r.NoError(ready.TurnOn())
	r.True(ready.IsReady())
}

func TestReadinessConcurrentTurnOn(t *testing.T) {
	var (
		ready Readiness
		wg    sync.WaitGroup
		mu    sync.Mutex
		won   int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ready.TurnOn() == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, won)
}
