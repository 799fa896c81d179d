package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"rgbmatrix/config"
	"rgbmatrix/logging"
	"rgbmatrix/table"
	"rgbmatrix/ui"
	"rgbmatrix/viewer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rgbmatrix [image]",
		Short: "browse the pixels of an image",
		Long: "rgbmatrix opens an image, extracts every pixel and shows them as a table,\n" +
			"either one pixel per row (list) or laid out like the image (matrix).",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			level, ok := logging.ParseLevel(logLevel)
			slog.SetDefault(logging.Logger(cmd.ErrOrStderr(), false, level))
			if !ok {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(ctx, cmd, args)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewExportCmd(ctx),
		NewStatsCmd(ctx),
	)

	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")

	f := cmd.Flags()
	f.String("mode", "", "start-up layout (list|matrix)")
	f.Int("zoom", 0, "start-up matrix zoom in percent (50-200, step 25)")
	f.Bool("ascii", false, "use ASCII characters only")
	return cmd
}

// loadConfig reads the user config. A broken file yields the defaults and
// the parse error.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.WarnContext(ctx, "config not loaded, using defaults", slog.Any("err", err))
	}
	return cfg, err
}

// applyFlags copies command-line overrides into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		s, _ := flags.GetString("mode")
		mode, err := table.ParseMode(s)
		if err != nil {
			return err
		}
		cfg.Viewer.DefaultMode = mode.String()
	}
	if flags.Changed("zoom") {
		z, _ := flags.GetInt("zoom")
		cfg.Viewer.DefaultZoom = int(table.NormalizeZoom(z))
	}
	return nil
}

// browserLogger sends logs to the rotating file; the terminal belongs to
// the UI. The returned closer is never nil.
func browserLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, io.Closer) {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	if cmd.Flags().Changed("log-level") {
		s, _ := cmd.Flags().GetString("log-level")
		level, _ = logging.ParseLevel(s)
	}

	fc, err := cfg.Log.FileConfig()
	if err != nil {
		return logging.Logger(io.Discard, false, level), io.NopCloser(nil)
	}
	w, err := logging.FileWriter(fc)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "log file %s: %v\n", fc.Path, err)
		return logging.Logger(io.Discard, false, level), io.NopCloser(nil)
	}
	return logging.Logger(w, false, level), w
}

func runBrowser(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, cfgErr := loadConfig(ctx)
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger, closer := browserLogger(cmd, cfg)
	defer closer.Close()
	slog.SetDefault(logger)

	config.InitCapabilities()
	caps := config.GetCapabilities()
	ui.UseTrueColor = caps.ShouldUseTrueColor(cfg.Viewer.TrueColor)
	logger.InfoContext(ctx, "starting",
		slog.String("version", viewer.Version),
		slog.String("colors", caps.ColorMode.String()),
		slog.Bool("kitty", caps.KittyGraphics))

	opts := []viewer.Option{
		viewer.WithContext(ctx),
		viewer.WithLogger(logger),
		viewer.WithCapabilities(caps),
		viewer.WithStartupError("Config Error", cfgErr),
	}
	if len(args) == 1 {
		opts = append(opts, viewer.WithInitialImage(args[0]))
	}
	if ascii, _ := cmd.Flags().GetBool("ascii"); ascii {
		opts = append(opts, viewer.WithASCII())
	}

	p := tea.NewProgram(viewer.New(cfg, opts...), tea.WithContext(ctx), tea.WithOutput(os.Stdout))
	if _, err := p.Run(); err != nil {
		logger.ErrorContext(ctx, "browser stopped", slog.Any("err", err))
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Long:  "print the version and the git sha of this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rgbmatrix %s (%s)\n", viewer.Version, gitsha)
		},
	}
	return cmd
}
