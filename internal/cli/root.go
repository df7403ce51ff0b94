package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/services"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Compact bool
}

// NewRootCommand creates the root command for estatectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "estatectl",
		Short: "Query real-estate catalogs and run investment calculators",
		Long: `estatectl runs the same catalog queries and investment calculators as the Estate API,
reading catalogs from YAML or JSON seed files. Results are printed as JSON on stdout;
logs go to stderr.

Examples:
  estatectl roi --price 1500000 --down 300000 --rent 8000 --appreciation 5 --years 5
  estatectl schedule --loan 1200000 --rate 3.5 --term 25
  estatectl query --catalog catalog.yaml --kind property --range price=1000000:3000000 --sort roi --order desc`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().BoolVar(&opts.Compact, "compact", false, "print JSON on a single line")

	cmd.AddCommand(NewROICommand(opts))
	cmd.AddCommand(NewMortgageCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))
	cmd.AddCommand(NewYieldCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewFacetsCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// logger returns a stderr logger when verbose output is requested and a silent one otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *logger.Logger {
	if !o.Verbose {
		return logger.Nop()
	}
	return logger.NewWithWriter("development", cmd.ErrOrStderr())
}

func (o *RootOptions) calculators(cmd *cobra.Command) services.CalculatorService {
	return services.NewCalculatorService(metrics.NewNop(), o.logger(cmd))
}

// writeJSON prints v to w, indented unless --compact is set.
func (o *RootOptions) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if !o.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
