// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package actpool

import (
	"context"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/test/identityset"
)

func newTransfer(i int, amount uint64) *Transfer {
	return &Transfer{
		Sender:    identityset.Address(0),
		Recipient: identityset.Address(i),
		Amount:    uint256.NewInt(amount),
		Height:    uint64(i),
	}
}

func TestActPool_AddAndPop(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	ap, err := NewActPool(Config{MaxNumTransfersPerPool: 3})
	r.NoError(err)
	r.EqualValues(3, ap.Capacity())
	r.EqualValues(3, ap.Available())

	r.NoError(ap.Add(ctx, newTransfer(1, 10), newTransfer(2, 20)))
	r.EqualValues(2, ap.Size())
	r.EqualValues(1, ap.Available())

	// all or nothing
	err = ap.Add(ctx, newTransfer(3, 30), newTransfer(4, 40))
	r.Equal(ErrActPoolFull, errors.Cause(err))
	r.EqualValues(2, ap.Size())
	r.NoError(ap.Add(ctx, newTransfer(3, 30)))
	r.Zero(ap.Available())
	r.Equal(ErrActPoolFull, errors.Cause(ap.Add(ctx, newTransfer(4, 40))))

	pending := ap.PendingTransfers()
	r.Len(pending, 3)
	for i, tsf := range pending {
		r.Equal(identityset.Address(i+1).String(), tsf.Recipient.String())
	}

	popped := ap.PopPending(2)
	r.Len(popped, 2)
	r.Equal("10", popped[0].Amount.Dec())
	r.Equal("20", popped[1].Amount.Dec())
	r.EqualValues(1, ap.Size())

	popped = ap.PopPending(0)
	r.Len(popped, 1)
	r.Equal("30", popped[0].Amount.Dec())
	r.Zero(ap.Size())
	r.Empty(ap.PopPending(5))
}

func TestActPool_InvalidTransfer(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	ap, err := NewActPool(DefaultConfig)
	r.NoError(err)

	r.Equal(ErrInvalidTransfer, ap.Add(ctx, nil))
	r.Equal(ErrInvalidTransfer, ap.Add(ctx, newTransfer(1, 0)))
	noRecipient := newTransfer(1, 1)
	noRecipient.Recipient = nil
	r.Equal(ErrInvalidTransfer, ap.Add(ctx, newTransfer(2, 2), noRecipient))
	r.Zero(ap.Size())

	_, err = NewActPool(Config{})
	r.Error(err)
}

func TestActPool_Reset(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	ap, err := NewActPool(DefaultConfig)
	r.NoError(err)
	r.NoError(ap.Add(ctx, newTransfer(1, 1), newTransfer(2, 2)))
	ap.Reset()
	r.Zero(ap.Size())
	r.Empty(ap.PendingTransfers())
	r.Equal(DefaultConfig.MaxNumTransfersPerPool, ap.Available())
}

func TestActPool_Concurrent(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	ap, err := NewActPool(Config{MaxNumTransfersPerPool: 100})
	r.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = ap.Add(ctx, newTransfer(i+1, uint64(j+1)))
			}
		}(i % identityset.Size())
	}
	wg.Wait()
	r.EqualValues(100, ap.Size())
	r.Len(ap.PopPending(0), 100)
}
