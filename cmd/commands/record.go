package commands

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"nexachart/internal/features/chart"
	"nexachart/internal/features/format"
	storage "nexachart/internal/infra/fs"
	logging "nexachart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recordAt string

var recordCmd = &cobra.Command{
	Use:   "record <series-file> <value>",
	Short: "Append a sample to a JSON or CSV series file",
	Long: `Appends one point to a series file, creating it if needed. A .csv file
stays CSV, any other file is written as JSON. The timestamp defaults to now
and must not precede the last recorded point.`,
	Args: cobra.ExactArgs(2),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordAt, "at", "", "Timestamp (RFC3339 or YYYY-MM-DD), default now")
}

func runRecord(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %q", storage.ErrBadValue, args[1])
	}

	at := time.Now().UTC().Truncate(time.Second)
	if recordAt != "" {
		if at, err = time.Parse(time.RFC3339, recordAt); err != nil {
			if at, err = time.Parse("2006-01-02", recordAt); err != nil {
				return fmt.Errorf("invalid --at %q: expected RFC3339 or YYYY-MM-DD", recordAt)
			}
		}
	}

	if err := storage.AppendPoint(args[0], chart.DataPoint{Timestamp: at, Value: value}); err != nil {
		logging.LogError("Failed to record point", zap.String("path", args[0]), zap.Error(err))
		return err
	}
	logging.LogSuccess("Point recorded",
		zap.String("path", args[0]),
		zap.String("at", format.DateTime(at)),
		zap.Float64("value", value))
	return nil
}
