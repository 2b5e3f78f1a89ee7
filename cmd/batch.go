package main

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gocarina/gocsv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terralab/lst-cli/internal/coefficients"
	"github.com/terralab/lst-cli/internal/splitwindow"
)

var (
	batchCSV         string
	batchOutput      string
	batchFormat      string
	batchConcurrency int
)

// batchSample is one row of the input CSV: per-scene emissivities and cwv
// plus the brightness-temperature pair.
type batchSample struct {
	Label         string  `csv:"label"`
	EmissivityB10 float64 `csv:"emissivity_b10"`
	EmissivityB11 float64 `csv:"emissivity_b11"`
	CWV           float64 `csv:"cwv"`
	T10           float64 `csv:"t10"`
	T11           float64 `csv:"t11"`
}

// batchResult is one output row.
type batchResult struct {
	Label    string  `csv:"label" json:"label"`
	LST      float64 `csv:"lst" json:"lst"`
	RMSE     float64 `csv:"rmse" json:"rmse"`
	Subrange string  `csv:"subrange" json:"subrange"`
	CWV      float64 `csv:"cwv" json:"cwv"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compute LST for a CSV of samples",
	Long: `Reads a CSV with columns label,emissivity_b10,emissivity_b11,cwv,t10,t11
and computes LST for every row. Rows that fail validation are logged and
skipped; the batch continues.

  lst-cli batch --csv samples.csv --output results.csv
  lst-cli batch --csv samples.csv --format json --concurrency 8`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(batchCSV)
		if err != nil {
			return eris.Wrap(err, "batch: open csv")
		}
		defer f.Close()

		var samples []batchSample
		if err := gocsv.Unmarshal(f, &samples); err != nil {
			return eris.Wrap(err, "batch: parse csv")
		}
		zap.L().Info("batch: parsed csv", zap.Int("samples", len(samples)))

		tables, err := coefficients.Load()
		if err != nil {
			return eris.Wrap(err, "batch: load coefficient tables")
		}
		policy, err := splitwindow.ParseTiePolicy(cfg.LST.TiePolicy)
		if err != nil {
			return err
		}
		table := tables.ColumnWaterVapour()

		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)

		var mu sync.Mutex
		results := make([]batchResult, 0, len(samples))
		var succeeded, failed atomic.Int64

		for i, sample := range samples {
			g.Go(func() error {
				est, err := splitwindow.New(sample.EmissivityB10, sample.EmissivityB11,
					sample.CWV, table, splitwindow.WithTiePolicy(policy))
				if err == nil {
					var lst float64
					lst, err = est.ComputeLST(sample.T10, sample.T11)
					if err == nil {
						succeeded.Add(1)
						mu.Lock()
						results = append(results, batchResult{
							Label:    sample.Label,
							LST:      lst,
							RMSE:     est.RMSE(),
							Subrange: est.Subrange().Key,
							CWV:      sample.CWV,
						})
						mu.Unlock()
						return nil
					}
				}

				failed.Add(1)
				zap.L().Error("batch: sample failed",
					zap.Int("row", i),
					zap.String("label", sample.Label),
					zap.Error(err),
				)
				return nil // don't abort batch on individual failure
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch: process")
		}

		zap.L().Info("batch: done",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)

		return writeBatchResults(results)
	},
}

func writeBatchResults(results []batchResult) error {
	out := os.Stdout
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return eris.Wrap(err, "batch: create output")
		}
		defer f.Close()
		out = f
	}

	switch batchFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "batch: encode json")
		}
	case "csv":
		if err := gocsv.Marshal(results, out); err != nil {
			return eris.Wrap(err, "batch: encode csv")
		}
	default:
		return eris.Errorf("batch: unknown format %q", batchFormat)
	}
	return nil
}

func init() {
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "input CSV path")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output path (default stdout)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "csv", "output format: csv or json")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max concurrent samples")
	_ = batchCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(batchCmd)
}
