// Copyright (c) 2021 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package routine

import (
	"context"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	"github.com/iotexproject/iotex-donation/pkg/lifecycle"
	"github.com/iotexproject/iotex-donation/pkg/log"
)

var _ lifecycle.StartStopper = (*TriggerTask)(nil)

// TriggerTaskOption is option to TriggerTask.
type TriggerTaskOption func(*TriggerTask)

// DelayTimeBeforeTrigger sets the delay between a trigger being taken and the task running
func DelayTimeBeforeTrigger(d time.Duration) TriggerTaskOption {
	return func(t *TriggerTask) {
		t.delay = d
	}
}

// TriggerBufferSize sets how many triggers can wait while the task runs
func TriggerBufferSize(sz int) TriggerTaskOption {
	return func(t *TriggerTask) {
		t.sz = sz
	}
}

// TriggerClock sets the clock the delay is measured on
func TriggerClock(c clock.Clock) TriggerTaskOption {
	return func(t *TriggerTask) {
		t.clock = c
	}
}

// TriggerTask runs a task on demand, one run at a time
type TriggerTask struct {
	lifecycle.Readiness
	delay time.Duration
	clock clock.Clock
	cb    Task
	sz    int
	ch    chan struct{}
	done  chan struct{}
	mu    sync.Mutex
}

// NewTriggerTask creates an instance of TriggerTask
func NewTriggerTask(cb Task, ops ...TriggerTaskOption) *TriggerTask {
	tt := &TriggerTask{
		cb:    cb,
		clock: clock.New(),
	}
	for _, opt := range ops {
		opt(tt)
	}
	tt.ch = make(chan struct{}, tt.sz)
	tt.done = make(chan struct{})
	return tt
}

// Start starts the goroutine taking triggers
func (t *TriggerTask) Start(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.TurnOn(); err != nil {
		return err
	}
	go func() {
		defer close(t.done)
		for range t.ch {
			if t.delay > 0 {
				t.clock.Sleep(t.delay)
			}
			t.cb()
		}
	}()
	return nil
}

// Trigger asks for a run without blocking, it returns false when the task is not running or the buffer is full
func (t *TriggerTask) Trigger() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.IsReady() {
		log.S().Warn("Trigger task is not ready.")
		return false
	}
	select {
	case t.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Stop stops taking triggers, runs the buffered ones and waits for the last run to return
func (t *TriggerTask) Stop(_ context.Context) error {
	t.mu.Lock()
	if err := t.TurnOff(); err != nil {
		t.mu.Unlock()
		return err
	}
	close(t.ch)
	t.mu.Unlock()
	<-t.done
	return nil
}
