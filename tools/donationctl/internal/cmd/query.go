// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iotexproject/iotex-donation/action/protocol/donation"
	"github.com/iotexproject/iotex-donation/chainservice"
)

func newDonationCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "donation ACCOUNT",
		Short: "Print the donation record of ACCOUNT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := address.FromString(args[0]); err != nil {
				return errors.Wrapf(err, "invalid account %s", args[0])
			}
			return read(cmd, run, donation.DonationForIDMethod, args[0])
		},
	}
}

func newTotalCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the number of distinct donors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd, run, donation.TotalNumberDonationsMethod)
		},
	}
}

func newBeneficiaryCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "beneficiary",
		Short: "Print the current beneficiary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd, run, donation.NameBeneficiaryMethod)
		},
	}
}

func newBalanceCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ACCOUNT",
		Short: "Print the balance of ACCOUNT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := address.FromString(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid account %s", args[0])
			}
			return run(cmd, func(ctx context.Context, cs *chainservice.ChainService) error {
				balance, err := cs.Balance(ctx, addr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), balance.Dec())
				return nil
			})
		},
	}
}

func read(cmd *cobra.Command, run runner, method string, args ...string) error {
	return run(cmd, func(ctx context.Context, cs *chainservice.ChainService) error {
		data, err := cs.ReadContract(ctx, method, args...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	})
}
