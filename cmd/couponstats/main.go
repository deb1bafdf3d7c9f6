// Package main provides the couponstats CLI: one-shot coupon analysis
// without starting the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"coupon-analytics-go/internal/config"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

type globalOpts struct {
	configPath string
	source     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}
	rootCmd := &cobra.Command{
		Use:   "couponstats",
		Short: "Compute coupon statistics from a coupon source document",
		Long: `Compute coupon statistics from a coupon source document.

Configuration precedence: flag > env > config file > default.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"),
		"Path to YAML config file (env: CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVarP(&opts.source, "source", "s", "",
		"Coupon source, .json or .xlsx (default: .data/coupons.json, env: COUPONS_PATH)")

	rootCmd.AddCommand(newReportCmd(opts), newCheckCmd(opts))
	return rootCmd
}

// resolve loads the config and applies flag overrides.
func (o *globalOpts) resolve() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.source != "" {
		cfg.Source.Path = o.source
	}
	return cfg, nil
}
