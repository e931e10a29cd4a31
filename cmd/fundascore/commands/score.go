package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbr/fundascore/internal/contracts"
)

var (
	scoreInput  string
	scoreOutput string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a batch of companies",
	Long: `Reads a JSON array of metric snapshots, scores every company and
prints the full batch result: scores with red flags, per-sector
statistics and the cross-sector comparison.

Example:
  fundascore score --input batch.json
  fundascore score --input batch.json --output result.json`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "JSON file with metric snapshots (required)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "write the result to a file instead of stdout")
	_ = scoreCmd.MarkFlagRequired("input")
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	snapshots, err := readSnapshots(scoreInput)
	if err != nil {
		return err
	}

	result, err := a.runner.Run(context.Background(), snapshots)
	if err != nil {
		return err
	}
	return writeJSON(scoreOutput, result)
}

// readSnapshots loads and minimally checks the input file.
func readSnapshots(path string) ([]*contracts.FinancialMetricsSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var snapshots []*contracts.FinancialMetricsSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("input file %s holds no snapshots", path)
	}
	return snapshots, nil
}

// writeJSON pretty-prints v to a file or stdout.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
