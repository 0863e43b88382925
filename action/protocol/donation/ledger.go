// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"context"
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-donation/action/protocol"
)

// Donation is the view of a donor's ledger entry
type Donation struct {
	AccountID   address.Address
	TotalAmount *uint256.Int
}

type donationJSON struct {
	AccountID   string `json:"account_id"`
	TotalAmount string `json:"total_amount"`
}

// MarshalJSON encodes the donation as {"account_id":"io1...","total_amount":"<decimal>"}
func (d *Donation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&donationJSON{
		AccountID:   d.AccountID.String(),
		TotalAmount: d.TotalAmount.Dec(),
	})
}

// UnmarshalJSON decodes the donation from its JSON form
func (d *Donation) UnmarshalJSON(data []byte) error {
	var dj donationJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	addr, err := address.FromString(dj.AccountID)
	if err != nil {
		return errors.Wrapf(err, "invalid account %s", dj.AccountID)
	}
	total, err := uint256.FromDecimal(dj.TotalAmount)
	if err != nil {
		return errors.Wrapf(err, "invalid amount %s", dj.TotalAmount)
	}
	d.AccountID = addr
	d.TotalAmount = total
	return nil
}

// DonationForID returns the ledger entry of addr, zero if addr never donated
func (p *Protocol) DonationForID(ctx context.Context, sr protocol.StateReader, addr address.Address) (*Donation, error) {
	total, _, err := p.donationOf(sr, addr)
	if err != nil {
		return nil, err
	}
	return &Donation{
		AccountID:   addr,
		TotalAmount: total,
	}, nil
}

// TotalNumberDonations returns the number of distinct donors
func (p *Protocol) TotalNumberDonations(ctx context.Context, sr protocol.StateReader) (uint64, error) {
	c := counter(0)
	if err := p.state(sr, _countKey, &c); err != nil {
		if isStateNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(c), nil
}

// donationOf returns the stored figure of addr and whether an entry exists
func (p *Protocol) donationOf(sr protocol.StateReader, addr address.Address) (*uint256.Int, bool, error) {
	a := amount{}
	if err := p.state(sr, donationKey(addr), &a); err != nil {
		if isStateNotExist(err) {
			return uint256.NewInt(0), false, nil
		}
		return nil, false, err
	}
	return a.value, true, nil
}

// putDonation overwrites the stored figure of addr, counting addr when it has no entry yet
func (p *Protocol) putDonation(sm protocol.StateManager, addr address.Address, total *uint256.Int) error {
	_, exist, err := p.donationOf(sm, addr)
	if err != nil {
		return err
	}
	if !exist {
		count, err := p.TotalNumberDonations(context.Background(), sm)
		if err != nil {
			return err
		}
		c := counter(count + 1)
		if err := p.putState(sm, _countKey, &c); err != nil {
			return err
		}
	}
	return p.putState(sm, donationKey(addr), &amount{value: total})
}

func donationKey(addr address.Address) []byte {
	return append(append([]byte{}, _donationKeyPrefix...), addr.Bytes()...)
}
