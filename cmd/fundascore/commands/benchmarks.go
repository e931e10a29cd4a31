package commands

import (
	"github.com/spf13/cobra"

	"github.com/quantbr/fundascore/internal/benchmark"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Dump the embedded sector benchmark table",
	Long: `Prints the validated benchmark dataset as JSON: version, reference
date and the per-sector medians. Loading fails if the dataset violates
its consistency invariants, so a successful dump doubles as a check.

Example:
  fundascore benchmarks`,
	RunE: runBenchmarks,
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

type benchmarksReport struct {
	Version int                            `json:"version"`
	AsOf    string                         `json:"as_of"`
	Sectors map[string]benchmark.Benchmark `json:"sectors"`
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	return writeJSON("", benchmarksReport{
		Version: a.registry.Version(),
		AsOf:    a.registry.AsOf(),
		Sectors: a.registry.Dump(),
	})
}
