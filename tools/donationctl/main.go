// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// This is a tool to call the donation contract on a local state db
// To use, run "go build ./tools/donationctl" and "./donationctl --config config.yaml [command]"
package main

import (
	"os"

	"github.com/iotexproject/iotex-donation/tools/donationctl/internal/cmd"
)

func main() {
	if err := cmd.NewDonationCtl().Execute(); err != nil {
		os.Exit(1)
	}
}
