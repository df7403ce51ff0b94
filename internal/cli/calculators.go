package cli

import (
	"github.com/spf13/cobra"
	"github.com/stwalsh4118/estate/api/internal/calculator"
)

// NewROICommand creates the roi command.
func NewROICommand(opts *RootOptions) *cobra.Command {
	var in calculator.ROIInput

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Project return on investment over a holding period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.calculators(cmd).ROI(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&in.PropertyPrice, "price", 0, "property price")
	cmd.Flags().Float64Var(&in.DownPayment, "down", 0, "down payment")
	cmd.Flags().Float64Var(&in.MonthlyRentalIncome, "rent", 0, "monthly rental income")
	cmd.Flags().Float64Var(&in.AnnualAppreciationPct, "appreciation", 0, "annual appreciation in percent")
	cmd.Flags().Float64Var(&in.HoldingPeriodYears, "years", 0, "holding period in years")
	markRequired(cmd, "price", "down", "years")

	return cmd
}

// NewMortgageCommand creates the mortgage command.
func NewMortgageCommand(opts *RootOptions) *cobra.Command {
	var in calculator.AmortizationInput

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Compute the level monthly payment of a fixed-rate loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.calculators(cmd).Mortgage(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), result)
		},
	}
	mortgageFlags(cmd, &in)

	return cmd
}

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(opts *RootOptions) *cobra.Command {
	var in calculator.AmortizationInput

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the month-by-month amortization schedule of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.calculators(cmd).MortgageSchedule(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), result)
		},
	}
	mortgageFlags(cmd, &in)

	return cmd
}

// NewYieldCommand creates the yield command.
func NewYieldCommand(opts *RootOptions) *cobra.Command {
	var in calculator.YieldInput

	cmd := &cobra.Command{
		Use:   "yield",
		Short: "Compute gross and net rental yield",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.calculators(cmd).RentalYield(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&in.PropertyValue, "value", 0, "property value")
	cmd.Flags().Float64Var(&in.MonthlyRent, "rent", 0, "monthly rent")
	cmd.Flags().Float64Var(&in.AnnualExpenses, "expenses", 0, "annual expenses")
	markRequired(cmd, "value", "rent")

	return cmd
}

func mortgageFlags(cmd *cobra.Command, in *calculator.AmortizationInput) {
	cmd.Flags().Float64Var(&in.LoanAmount, "loan", 0, "loan amount")
	cmd.Flags().Float64Var(&in.AnnualInterestRatePct, "rate", 0, "annual interest rate in percent")
	cmd.Flags().Float64Var(&in.TermYears, "term", 0, "term in years")
	markRequired(cmd, "loan", "rate", "term")
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.MarkFlagRequired(name)
	}
}
