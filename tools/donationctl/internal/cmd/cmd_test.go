// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-donation/test/identityset"
)

var (
	_owner       = identityset.Address(0)
	_beneficiary = identityset.Address(1)
	_donor       = identityset.Address(2)
	_contract    = identityset.Address(10)
)

func writeConfig(t *testing.T) string {
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
chain:
  ownerAddress: %s
  contractAddress: %s
  lazyInit: false
  donation:
    storageCost: "100"
    defaultBeneficiary: %s
db:
  dbType: boltdb
  dbPath: %s
`, _owner.String(), _contract.String(), _owner.String(), filepath.Join(dir, "state.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))
	return path
}

func runCmd(configPath string, args ...string) (string, error) {
	root := NewDonationCtl()
	out := bytes.NewBuffer(nil)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestDonationCtl(t *testing.T) {
	r := require.New(t)
	cfgPath := writeConfig(t)

	_, err := runCmd(cfgPath, "construct", _beneficiary.String(), "--caller", _donor.String())
	r.Error(err)
	_, err = runCmd(cfgPath, "donate", "150", "--caller", _donor.String())
	r.Error(err)

	out, err := runCmd(cfgPath, "construct", _beneficiary.String(), "--caller", _owner.String())
	r.NoError(err)
	r.Contains(out, "blkHeight")

	out, err = runCmd(cfgPath, "donate", "150", "--caller", _donor.String())
	r.NoError(err)
	r.Contains(out, "return: 150")

	// the pending transfer is settled when the command exits
	out, err = runCmd(cfgPath, "balance", _beneficiary.String())
	r.NoError(err)
	r.Equal("50", out)
	out, err = runCmd(cfgPath, "balance", _contract.String())
	r.NoError(err)
	r.Equal("100", out)

	out, err = runCmd(cfgPath, "donation", _donor.String())
	r.NoError(err)
	var record struct {
		AccountID   string `json:"account_id"`
		TotalAmount string `json:"total_amount"`
	}
	r.NoError(json.Unmarshal([]byte(out), &record))
	r.Equal(_donor.String(), record.AccountID)
	r.Equal("150", record.TotalAmount)

	out, err = runCmd(cfgPath, "total")
	r.NoError(err)
	r.Equal("1", out)

	_, err = runCmd(cfgPath, "change-beneficiary", _donor.String(), "--caller", _owner.String())
	r.NoError(err)
	out, err = runCmd(cfgPath, "beneficiary")
	r.NoError(err)
	r.Equal(_donor.String(), out)
}

func TestDonationCtl_InvalidArgs(t *testing.T) {
	r := require.New(t)
	cfgPath := writeConfig(t)

	_, err := runCmd(cfgPath, "donate", "abc", "--caller", _donor.String())
	r.Error(err)
	_, err = runCmd(cfgPath, "donate", "1", "--caller", "io1invalid")
	r.Error(err)
	_, err = runCmd(cfgPath, "balance", "io1invalid")
	r.Error(err)
	_, err = runCmd(cfgPath, "donate", "1")
	r.Error(err)
	_, err = runCmd(filepath.Join(t.TempDir(), "missing.yaml"), "total")
	r.Error(err)
}
