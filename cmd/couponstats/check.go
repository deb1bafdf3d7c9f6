package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coupon-analytics-go/internal/dataset"
)

func newCheckCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the coupon source and print how many coupons it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			coupons, err := dataset.Load(cfg.Source.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d coupons\n", cfg.Source.Path, len(coupons))
			return nil
		},
	}
}
