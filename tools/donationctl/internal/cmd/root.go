// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-donation/chainservice"
	"github.com/iotexproject/iotex-donation/config"
	"github.com/iotexproject/iotex-donation/pkg/log"
	"github.com/iotexproject/iotex-donation/pkg/tracer"
)

// NewDonationCtl builds the root command and its subcommands
func NewDonationCtl() *cobra.Command {
	var configPaths []string
	rootCmd := &cobra.Command{
		Use:           "donationctl [command] [flags]",
		Short:         "Command-line interface for the donation ledger",
		Long:          "donationctl is a command-line interface to call the donation contract on a local state db.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringSliceVarP(&configPaths, "config", "c", nil, "config files, later ones override earlier ones")

	run := func(cmd *cobra.Command, f func(context.Context, *chainservice.ChainService) error) error {
		return withService(cmd.Context(), configPaths, f)
	}
	rootCmd.AddCommand(
		newConstructCmd(run),
		newChangeBeneficiaryCmd(run),
		newDonateCmd(run),
		newDonationCmd(run),
		newTotalCmd(run),
		newBeneficiaryCmd(run),
		newBalanceCmd(run),
	)
	return rootCmd
}

type runner func(*cobra.Command, func(context.Context, *chainservice.ChainService) error) error

// withService runs f on a started chain service and stops it afterwards, settling what f left pending
func withService(ctx context.Context, configPaths []string, f func(context.Context, *chainservice.ChainService) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.New(configPaths)
	if err != nil {
		return err
	}
	if err := log.InitLoggers(cfg.Log, cfg.SubLogs); err != nil {
		return errors.Wrap(err, "failed to init loggers")
	}
	tp, err := tracer.NewProvider(
		tracer.WithServiceName(cfg.Tracer.ServiceName),
		tracer.WithEndpoint(cfg.Tracer.EndPoint),
		tracer.WithInstanceID(cfg.Tracer.InstanceID),
		tracer.WithSamplingRatio(cfg.Tracer.SamplingRatio),
	)
	if err != nil {
		return errors.Wrap(err, "cannot config tracer provider")
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				log.L().Error("Failed to shutdown tracer provider.", zap.Error(err))
			}
		}()
	}

	cs, err := chainservice.New(cfg)
	if err != nil {
		return err
	}
	if err := cs.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if serr := cs.Stop(ctx); serr != nil && err == nil {
			err = serr
		}
	}()
	return f(ctx, cs)
}
