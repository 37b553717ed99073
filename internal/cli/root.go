package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/paypay-statement-converter/internal/config"
	"github.com/insightdelivered/paypay-statement-converter/internal/converter"
	"github.com/insightdelivered/paypay-statement-converter/internal/logger"
	"github.com/insightdelivered/paypay-statement-converter/internal/writer"
)

// ErrMissingInput is returned when no input path is given.
var ErrMissingInput = errors.New("missing input path")

const usageLine = "Usage: paypay-statement-converter <path-to-html> [output-csv]"

// options holds flag values shared by all commands.
type options struct {
	configPath string
	format     string
	encoding   string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "paypay-statement-converter <input.html> [output]",
		Short: "Convert a saved PayPay statement page to CSV",
		Long: `PayPay Statement HTML to CSV Converter

Reads a statement page saved from the PayPay web site and writes one row
per settlement plus a TOTAL row:

  item_name,usage_date,payment_date,amount,payment_method

Without an output path the CSV is printed to stdout.`,
		Example: `  # Print CSV to stdout
  paypay-statement-converter statement.html

  # Write to a file
  paypay-statement-converter statement.html ledger.csv

  # Page saved as Shift_JIS, exported to Excel
  paypay-statement-converter --encoding=shift_jis --format=xlsx statement.html ledger.xlsx`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.HasParent() && len(args) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), usageLine)
				return ErrMissingInput
			}
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(writer.FormatCSV), "output format: csv, xlsx")
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", "input encoding: utf-8, shift_jis, euc-jp, iso-2022-jp")

	cmd.AddCommand(newServeCmd(opts), newVersionCmd())
	return cmd
}

// setup loads configuration and attaches a logger to the command context.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrEnv(o.configPath)
	if err != nil {
		return err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	o.cfg = cfg

	log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

func runConvert(cmd *cobra.Command, opts *options, args []string) error {
	w, err := writer.New(opts.format)
	if err != nil {
		return err
	}
	toStdout := len(args) < 2
	if toStdout && strings.EqualFold(opts.format, string(writer.FormatXLSX)) {
		return fmt.Errorf("%s output requires an output path", opts.format)
	}

	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	st, err := converter.New(opts.cfg).WithEncoding(opts.encoding).ConvertFile(ctx, inputPath)
	if err != nil {
		return err
	}

	if toStdout {
		if err := w.Write(cmd.OutOrStdout(), st); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	outputPath, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}
	if err := w.WriteToFile(outputPath, st); err != nil {
		return err
	}
	log.Debug().Str("output", outputPath).Int("entries", len(st.Entries)).Msg("statement written")

	fmt.Fprintf(cmd.OutOrStdout(), "%s written to: %s\n", strings.ToUpper(opts.format), outputPath)
	return nil
}
