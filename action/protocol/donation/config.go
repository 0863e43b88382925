// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package donation

import (
	"github.com/holiman/uint256"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
)

// Config is the config of the donation protocol
type Config struct {
	// StorageCost is the one-time fee kept from a donor's first donation, in decimal
	StorageCost string `yaml:"storageCost"`
	// DefaultBeneficiary receives donations of a contract initialized without an explicit construct
	DefaultBeneficiary string `yaml:"defaultBeneficiary"`
}

// DefaultConfig is the default config of the donation protocol
var DefaultConfig = Config{
	StorageCost:        "1000000000000000000000",
	DefaultBeneficiary: charityAddress().String(),
}

func charityAddress() address.Address {
	h := hash.Hash160b([]byte("charity.donation"))
	addr, err := address.FromBytes(h[:])
	if err != nil {
		panic(err)
	}
	return addr
}

// Parse validates the config and returns the storage cost and the default beneficiary
func (cfg Config) Parse() (*uint256.Int, address.Address, error) {
	cost, err := uint256.FromDecimal(cfg.StorageCost)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid storage cost %s", cfg.StorageCost)
	}
	if !fitsAmount(cost) {
		return nil, nil, errors.Wrapf(ErrAmountOverflow, "storage cost %s", cfg.StorageCost)
	}
	beneficiary, err := address.FromString(cfg.DefaultBeneficiary)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid default beneficiary %s", cfg.DefaultBeneficiary)
	}
	return cost, beneficiary, nil
}
