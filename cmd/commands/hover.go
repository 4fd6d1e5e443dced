package commands

import (
	"fmt"
	"strings"

	"nexachart/internal/features/chart"
	storage "nexachart/internal/infra/fs"

	"github.com/spf13/cobra"
)

var (
	hoverX float64
	hoverY float64
)

var hoverCmd = &cobra.Command{
	Use:   "hover <series-file>",
	Short: "Simulate a pointer at (x, y) and render the chart with its tooltip",
	Long: `Places the pointer at canvas coordinates (--x, --y) in logical pixels,
prints the tooltip text of the nearest point within 30px, and writes the
highlighted chart with the tooltip box drawn in.`,
	Args: cobra.ExactArgs(1),
	RunE: runHover,
}

func init() {
	hoverCmd.Flags().Float64Var(&hoverX, "x", 0, "Pointer x in logical pixels")
	hoverCmd.Flags().Float64Var(&hoverY, "y", 0, "Pointer y in logical pixels")
}

func runHover(cmd *cobra.Command, args []string) error {
	data, err := storage.LoadSeries(args[0])
	if err != nil {
		return err
	}

	surface, host, err := attachSurface(cfg, data)
	if err != nil {
		return err
	}
	defer surface.Detach()

	if !surface.Options().ShowTooltip {
		return fmt.Errorf("tooltip is disabled (chart.show_tooltip=false)")
	}
	host.Move(hoverX, hoverY)

	out := cmd.OutOrStdout()
	if ov := surface.Overlay(); ov.Visible {
		fmt.Fprintln(out, strings.Join(ov.Lines, "\n"))
	} else {
		fmt.Fprintf(out, "no point within %gpx of (%g, %g)\n", chart.TooltipThreshold, hoverX, hoverY)
	}

	return saveChart(surface, outputPath(cfg))
}
