package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abaddouh/igazolo/internal/config"
	"github.com/abaddouh/igazolo/internal/logging"
	"github.com/abaddouh/igazolo/internal/stamper"
	"github.com/abaddouh/igazolo/internal/template"
)

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd(time.Now)
	if err := cmd.Execute(); err != nil {
		if stamper.IsKind(err, stamper.KindInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	template   string
	fonts      []string
	fontDirs   []string
	fallback   string
	debug      bool
}

// NewRootCmd builds the command tree. now supplies the current_date field.
func NewRootCmd(now func() time.Time) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "igazolo <fromDate> [<toDate>]",
		Short: "Write handwritten-style dates onto the igazolas form",
		Long: "Reads igazolas.jpg, writes the from/to dates and today's date into their\n" +
			"boxes and saves igazolas_<month>_<day>.jpg next to it.\n\n" +
			"Dates are YYYY-MM-DD or YYYY.MM.DD; toDate defaults to fromDate.",
		Example:      "  igazolo 2025-12-01\n  igazolo 2025.12.01 2025.12.05",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(c, logging.FormatText)
			if err != nil {
				return err
			}

			s := newStamper(cfg, cfg.Resolver(), now, logger)
			res, err := s.StampFile(args)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "Successfully created: %s\n", res.Path)
			fmt.Fprintf(out, "Dates used: %s - %s\n", res.From.Short(), res.To.Short())
			fmt.Fprintf(out, "Current date used: %s\n", res.Today.Short())
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "optional YAML config file")
	f.StringVar(&opts.template, "template", "", "template image (default igazolas.jpg)")
	f.StringSliceVar(&opts.fonts, "font", nil, "font candidates in order of preference (file names or paths)")
	f.StringSliceVar(&opts.fontDirs, "font-dir", nil, "directories searched for font candidates")
	f.StringVar(&opts.fallback, "font-fallback", "", `when no candidate is found: "embedded" or "none"`)
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newServeCmd(&opts, now))
	return cmd
}

// load merges the config file, environment and flags, then builds the logger.
func (o *options) load(c *cobra.Command, format logging.Format) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	if o.template != "" {
		cfg.Template = o.template
	}
	if len(o.fonts) > 0 {
		cfg.Fonts.Candidates = o.fonts
	}
	if len(o.fontDirs) > 0 {
		cfg.Fonts.Dirs = o.fontDirs
	}
	if o.fallback != "" {
		cfg.Fonts.Fallback = o.fallback
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var w io.Writer = c.ErrOrStderr()
	logger := logging.New(w, logging.Config{Level: cfg.LogLevel, Format: format, Debug: o.debug})
	return cfg, logger, nil
}

func newStamper(cfg *config.Config, fs stamper.FontSource, now func() time.Time, logger *slog.Logger) *stamper.Stamper {
	return stamper.New(template.New(cfg.Template), fs, now, logger, stamper.DefaultOptions())
}
