package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quantbr/fundascore/internal/contracts"
)

var (
	sectorsInput  string
	sectorsOutput string
)

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Sector statistics and cross-sector comparison for a batch",
	Long: `Scores the batch and prints only the sector-level view: per-sector
statistics and the cross-sector comparison report.

Example:
  fundascore sectors --input batch.json`,
	RunE: runSectors,
}

func init() {
	rootCmd.AddCommand(sectorsCmd)

	sectorsCmd.Flags().StringVar(&sectorsInput, "input", "", "JSON file with metric snapshots (required)")
	sectorsCmd.Flags().StringVar(&sectorsOutput, "output", "", "write the report to a file instead of stdout")
	_ = sectorsCmd.MarkFlagRequired("input")
}

type sectorsReport struct {
	Statistics map[string]contracts.SectorStatistics `json:"statistics"`
	Comparison contracts.SectorComparison            `json:"comparison"`
}

func runSectors(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	snapshots, err := readSnapshots(sectorsInput)
	if err != nil {
		return err
	}

	result, err := a.runner.Run(context.Background(), snapshots)
	if err != nil {
		return err
	}
	return writeJSON(sectorsOutput, sectorsReport{
		Statistics: result.Statistics,
		Comparison: result.Comparison,
	})
}
