// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/action/protocol"
	"github.com/iotexproject/iotex-donation/pkg/log"
)

// Donate records the value attached by the caller and requests its transfer to the beneficiary. The storage cost is
// kept out of the transfer on the caller's first donation. It returns the caller's cumulative figure, which is the
// one stored in the ledger, so after the first donation it exceeds the forwarded sum by the storage cost.
func (p *Protocol) Donate(ctx context.Context, sm protocol.StateManager) (*uint256.Int, error) {
	actionCtx := protocol.MustGetActionCtx(ctx)
	donor := actionCtx.Caller
	donated := actionCtx.Amount
	if donated == nil {
		donated = uint256.NewInt(0)
	}
	if !fitsAmount(donated) {
		return nil, errors.Wrapf(ErrAmountOverflow, "donated amount %s", donated.Dec())
	}
	stored, _, err := p.donationOf(sm, donor)
	if err != nil {
		return nil, err
	}
	toTransfer := donated.Clone()
	if stored.IsZero() {
		if donated.Lt(p.storageCost) {
			return nil, errors.Wrapf(
				ErrInsufficientFirstDonation,
				"donated %s, storage cost %s",
				donated.Dec(),
				p.storageCost.Dec(),
			)
		}
		toTransfer.Sub(donated, p.storageCost)
	}
	total := new(uint256.Int).Add(stored, donated)
	if !fitsAmount(total) {
		return nil, errors.Wrapf(ErrAmountOverflow, "stored %s, donated %s", stored.Dec(), donated.Dec())
	}
	recipient, err := p.beneficiary(sm)
	if err != nil {
		return nil, err
	}
	if err := p.putDonation(sm, donor, total); err != nil {
		return nil, err
	}
	log.L().Info("Thank you for donating!",
		zap.String("donor", donor.String()),
		zap.String("amount", donated.Dec()),
		zap.String("total", total.Dec()))
	if err := p.transfer.RequestTransfer(ctx, toTransfer, recipient); err != nil {
		return nil, errors.Wrap(err, "failed to request transfer to beneficiary")
	}
	return total, nil
}
