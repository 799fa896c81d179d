package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"rgbmatrix/pixel"
	"rgbmatrix/ui"

	"github.com/spf13/cobra"
)

type colorReport struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

type pointReport struct {
	X int `json:"x"`
	Y int `json:"y"`
	colorReport
}

type statsReport struct {
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Total     int          `json:"total"`
	Average   colorReport  `json:"average"`
	Brightest *pointReport `json:"brightest,omitempty"`
	Darkest   *pointReport `json:"darkest,omitempty"`
}

func newPointReport(p *pixel.Record) *pointReport {
	if p == nil {
		return nil
	}
	return &pointReport{X: p.X, Y: p.Y, colorReport: colorReport{R: p.R, G: p.G, B: p.B, Hex: p.Hex}}
}

func newStatsReport(seq *pixel.Sequence) statsReport {
	s := pixel.Summarize(seq)
	return statsReport{
		Width:     seq.Width(),
		Height:    seq.Height(),
		Total:     s.Total,
		Average:   colorReport{R: s.AvgR, G: s.AvgG, B: s.AvgB, Hex: s.AverageHex()},
		Brightest: newPointReport(s.Brightest),
		Darkest:   newPointReport(s.Darkest),
	}
}

// NewStatsCmd prints the color statistics of an image
func NewStatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <image>",
		Short: "print color statistics",
		Long:  "Extracts every pixel of the image and prints the average, brightest and darkest colors.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig(ctx)
			seq, err := extractFile(ctx, args[0], cfg)
			if err != nil {
				return err
			}
			report := newStatsReport(seq)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return writeStats(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func writeStats(w io.Writer, r statsReport) error {
	a := r.Average
	lines := []string{
		fmt.Sprintf("Dimensions:   %d×%d", r.Width, r.Height),
		fmt.Sprintf("Total pixels: %s", ui.FormatCount(r.Total)),
		fmt.Sprintf("Average:      %s (%d, %d, %d)", a.Hex, a.R, a.G, a.B),
	}
	if p := r.Brightest; p != nil {
		lines = append(lines, fmt.Sprintf("Brightest:    %s at (%d, %d)", p.Hex, p.X, p.Y))
	}
	if p := r.Darkest; p != nil {
		lines = append(lines, fmt.Sprintf("Darkest:      %s at (%d, %d)", p.Hex, p.X, p.Y))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
