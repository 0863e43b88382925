// Copyright (c) 2021 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package routine_test

import (
	"context"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/pkg/routine"
)

func TestTriggerTask(t *testing.T) {
	require := require.New(t)
	h := &MockHandler{Count: 0}
	ctx := context.Background()
	task := routine.NewTriggerTask(h.Do, routine.TriggerBufferSize(1))

	// not started
	require.False(task.Trigger())

	require.NoError(task.Start(ctx))
	require.True(task.Trigger())
	require.Eventually(func() bool { return h.count() == 1 }, time.Second, 10*time.Millisecond)
	require.True(task.Trigger())
	require.Eventually(func() bool { return h.count() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(task.Stop(ctx))
	require.False(task.Trigger())
	require.Equal(uint(2), h.count())
	require.Error(task.Stop(ctx))
}

func TestTriggerTaskDelay(t *testing.T) {
	require := require.New(t)
	h := &MockHandler{Count: 0}
	ctx := context.Background()
	mc := clock.NewMock()
	task := routine.NewTriggerTask(h.Do,
		routine.DelayTimeBeforeTrigger(time.Minute),
		routine.TriggerBufferSize(1),
		routine.TriggerClock(mc))
	require.Error(task.Stop(ctx))
	require.NoError(task.Start(ctx))
	require.Error(task.Start(ctx))

	require.True(task.Trigger())
	time.Sleep(20 * time.Millisecond)
	require.Zero(h.count())
	require.Eventually(func() bool {
		mc.Add(time.Minute)
		return h.count() == 1
	}, time.Second, 10*time.Millisecond)
	require.NoError(task.Stop(ctx))
}

func TestTriggerTaskWithBufferSize(t *testing.T) {
	require := require.New(t)
	h := &MockHandler{Count: 0}
	ctx := context.Background()
	task := routine.NewTriggerTask(h.Do,
		routine.DelayTimeBeforeTrigger(50*time.Millisecond),
		routine.TriggerBufferSize(2))
	require.NoError(task.Start(ctx))

	var succ uint
	for i := 0; i < 10; i++ {
		if task.Trigger() {
			succ++
		}
	}
	// at most the buffer plus the one being processed
	require.True(succ >= 2 && succ <= 3)
	require.NoError(task.Stop(ctx))
	require.Equal(succ, h.count())
}
