package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coupon-analytics-go/internal/aggregator"
	"coupon-analytics-go/internal/export"
	"coupon-analytics-go/internal/logger"
	"coupon-analytics-go/internal/processor"
)

func newReportCmd(opts *globalOpts) *cobra.Command {
	var (
		topWords int
		xlsxPath string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the analysis report as JSON, or write it as an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				if topWords <= 0 {
					return fmt.Errorf("--top must be positive, got %d", topWords)
				}
				cfg.Analysis.TopWords = topWords
			}

			log := logger.NewWithOptions(logger.Options{
				Level:       cfg.Logging.Level,
				Environment: cfg.Logging.Environment,
				Output:      cmd.ErrOrStderr(),
			})
			proc := processor.New(cfg.Source.Path, aggregator.Options{TopWords: cfg.Analysis.TopWords}, log, nil)
			res, err := proc.Run(cmd.Context())
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				f, err := os.Create(xlsxPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", xlsxPath, err)
				}
				if err := export.WriteXLSX(f, res.Report); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Report)
		},
	}
	cmd.Flags().IntVarP(&topWords, "top", "n", aggregator.DefaultTopWords,
		"Entries per word-frequency table (env: ANALYSIS_TOP_WORDS)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the report to this XLSX file instead of printing JSON")
	return cmd
}
