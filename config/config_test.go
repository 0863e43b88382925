// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/test/identityset"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	r := require.New(t)
	cfg, err := New(nil)
	r.NoError(err)
	r.Equal(Default.Chain, cfg.Chain)
	r.Equal(Default.DB, cfg.DB)
	r.Equal(Default.ActPool, cfg.ActPool)
	r.Equal(Default.Settlement, cfg.Settlement)
	r.NotEqual(cfg.Chain.Owner().String(), cfg.Chain.Contract().String())
}

func TestNewConfigWithWrongConfigPath(t *testing.T) {
	_, err := New([]string{"wrong_path"})
	require.Error(t, err)
}

func TestNewConfigWithOverride(t *testing.T) {
	r := require.New(t)
	owner := identityset.Address(0).String()
	path := writeConfig(t, fmt.Sprintf(`
chain:
    ownerAddress: "%s"
    donation:
        storageCost: "100"
db:
    dbType: "${DONATION_DB_TYPE}"
settlement:
    interval: 3s
`, owner))
	r.NoError(os.Setenv("DONATION_DB_TYPE", db.DBMemory))
	defer os.Unsetenv("DONATION_DB_TYPE")

	cfg, err := New([]string{path})
	r.NoError(err)
	r.Equal(owner, cfg.Chain.Owner().String())
	r.Equal("100", cfg.Chain.Donation.StorageCost)
	r.Equal(Default.Chain.Donation.DefaultBeneficiary, cfg.Chain.Donation.DefaultBeneficiary)
	r.Equal(db.DBMemory, cfg.DB.DBType)
	r.Equal(3*time.Second, cfg.Settlement.Interval)
	r.Equal(Default.Settlement.BatchSize, cfg.Settlement.BatchSize)
}

func TestNewConfigInvalid(t *testing.T) {
	r := require.New(t)
	path := writeConfig(t, `
chain:
    ownerAddress: "hello world"
`)
	_, err := New([]string{path})
	r.Equal(ErrInvalidCfg, errors.Cause(err))

	cfg, err := New([]string{path}, DoNotValidate)
	r.NoError(err)
	r.Equal("hello world", cfg.Chain.OwnerAddress)
	r.Panics(func() { cfg.Chain.Owner() })
}

func TestValidateChain(t *testing.T) {
	r := require.New(t)
	cfg := Default
	r.NoError(ValidateChain(cfg))

	cfg.Chain.ContractAddress = "world hello"
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateChain(cfg)))

	cfg = Default
	cfg.Chain.Donation.StorageCost = "abc"
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateChain(cfg)))

	cfg = Default
	cfg.Chain.Donation.DefaultBeneficiary = ""
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateChain(cfg)))
}

func TestValidateDB(t *testing.T) {
	r := require.New(t)
	cfg := Default
	r.NoError(ValidateDB(cfg))
	cfg.DB.DBType = db.DBMemory
	cfg.DB.DbPath = ""
	r.NoError(ValidateDB(cfg))
	cfg.DB.DBType = db.DBPebble
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateDB(cfg)))
	cfg.DB.DBType = "leveldb"
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateDB(cfg)))
}

func TestValidateActPoolAndSettlement(t *testing.T) {
	r := require.New(t)
	cfg := Default
	r.NoError(ValidateActPool(cfg))
	r.NoError(ValidateSettlement(cfg))

	cfg.ActPool.MaxNumTransfersPerPool = 0
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateActPool(cfg)))

	cfg = Default
	cfg.Settlement.Interval = 0
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateSettlement(cfg)))
	cfg = Default
	cfg.Settlement.BatchSize = -1
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateSettlement(cfg)))
	cfg = Default
	cfg.Settlement.RetryInterval = -time.Second
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateSettlement(cfg)))
}
