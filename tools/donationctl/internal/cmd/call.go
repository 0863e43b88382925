// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/iotexproject/iotex-donation/action"
	"github.com/iotexproject/iotex-donation/chainservice"
)

func newConstructCmd(run runner) *cobra.Command {
	var caller string
	cmd := &cobra.Command{
		Use:   "construct BENEFICIARY --caller OWNER",
		Short: "Initialize the contract with a beneficiary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			beneficiary, err := address.FromString(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid beneficiary %s", args[0])
			}
			return call(cmd, run, caller, nil, action.NewConstruct(beneficiary))
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "", "address of the caller")
	_ = cmd.MarkFlagRequired("caller")
	return cmd
}

func newChangeBeneficiaryCmd(run runner) *cobra.Command {
	var caller string
	cmd := &cobra.Command{
		Use:   "change-beneficiary BENEFICIARY --caller OWNER",
		Short: "Replace the beneficiary of future donations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			beneficiary, err := address.FromString(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid beneficiary %s", args[0])
			}
			return call(cmd, run, caller, nil, action.NewChangeBeneficiary(beneficiary))
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "", "address of the caller")
	_ = cmd.MarkFlagRequired("caller")
	return cmd
}

func newDonateCmd(run runner) *cobra.Command {
	var caller string
	cmd := &cobra.Command{
		Use:   "donate AMOUNT --caller DONOR",
		Short: "Donate AMOUNT, prints the cumulative donation of the caller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := uint256.FromDecimal(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid amount %s", args[0])
			}
			return call(cmd, run, caller, amount, action.NewDonate())
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "", "address of the caller")
	_ = cmd.MarkFlagRequired("caller")
	return cmd
}

func call(cmd *cobra.Command, run runner, caller string, amount *uint256.Int, act action.Action) error {
	callerAddr, err := address.FromString(caller)
	if err != nil {
		return errors.Wrapf(err, "invalid caller %s", caller)
	}
	elp := action.NewEnvelope(callerAddr, amount, act)
	return run(cmd, func(ctx context.Context, cs *chainservice.ChainService) error {
		receipt, err := cs.Execute(ctx, elp)
		if err != nil {
			return err
		}
		out, err := protojson.MarshalOptions{Multiline: true}.Marshal(receipt.ConvertToReceiptPb())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if len(receipt.ReturnValue) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "return: %s\n", receipt.ReturnValue)
		}
		return nil
	})
}
