package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rgbmatrix/config"
	"rgbmatrix/imagefile"
	"rgbmatrix/logging"
	"rgbmatrix/pixel"
	"rgbmatrix/ui"
	"rgbmatrix/viewer"
	"rgbmatrix/worker"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewExportCmd writes the pixel table of an image as CSV
func NewExportCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "export the pixel table as CSV",
		Long: "Extracts every pixel of the image and writes X,Y,R,G,B,HEX rows.\n" +
			"Output goes to stdout when it is piped, otherwise to rgb_matrix_<ms>.csv\n" +
			"in the configured export directory. Use -o - to force stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig(ctx)
			seq, err := extractFile(ctx, args[0], cfg)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "-" || (out == "" && !isTerminal(os.Stdout)) {
				rows, err := pixel.WriteCSV(cmd.OutOrStdout(), seq)
				if err != nil {
					return fmt.Errorf("writing csv: %w", err)
				}
				slog.InfoContext(ctx, "csv exported", slog.String("path", "-"), slog.Int("rows", rows))
				return nil
			}

			if out == "" {
				out = cfg.Viewer.ExportPath(pixel.ExportFilename(time.Now()))
			}
			rows, err := viewer.ExportCSV(out, seq)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "csv exported", slog.String("path", out), slog.Int("rows", rows))
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s rows to %s\n", ui.FormatCount(rows), out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// extractFile loads path and runs it through an extraction worker, the
// same pipeline the browser uses.
func extractFile(ctx context.Context, path string, cfg *config.Config) (*pixel.Sequence, error) {
	img, err := imagefile.Load(path, cfg.Viewer.MaxFileBytes())
	if err != nil {
		return nil, err
	}
	ctx = logging.AppendCtx(ctx, slog.String("image", filepath.Base(path)))

	w := worker.New(worker.WithLogger(slog.Default()))
	defer w.Stop()

	id, err := w.Submit(img.Bitmap)
	if err != nil {
		return nil, err
	}
	for {
		resp, ok := w.Next(ctx)
		if !ok {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, worker.ErrStopped
		}
		if resp.ID != id {
			continue
		}
		switch resp.Kind {
		case worker.KindFailed:
			return nil, resp.Err
		case worker.KindComplete:
			if resp.Pixels.IsEmpty() {
				return nil, errors.New("the image has no pixels")
			}
			slog.DebugContext(ctx, "pixels extracted",
				slog.Int("pixels", resp.Pixels.Len()),
				slog.Duration("elapsed", resp.Elapsed))
			return resp.Pixels, nil
		}
	}
}
