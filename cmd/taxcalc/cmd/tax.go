package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/govalues/moneytax/money"
	"github.com/govalues/moneytax/tax"
)

var taxDeductions []string

var taxCmd = &cobra.Command{
	Use:   "tax <schedule> <income>",
	Short: "Compute the tax owed under a schedule",
	Long: `Computes the tax owed on an income under a configured tax schedule.
The income and deductions are in the currency of the schedule.

Examples:
  taxcalc tax ca-federal 25000
  taxcalc tax ca-federal 27000 --deduction capital_gains=4000`,
	Args: cobra.ExactArgs(2),
	RunE: runTax,
}

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List the configured tax schedules",
	Args:  cobra.NoArgs,
	RunE:  runSchedules,
}

func init() {
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(schedulesCmd)

	taxCmd.Flags().StringArrayVarP(&taxDeductions, "deduction", "d", nil, "deduction claim as category=amount (repeatable)")
}

func parseDeduction(curr money.Currency, s string) (tax.Deduction, error) {
	name, amount, ok := strings.Cut(s, "=")
	if !ok {
		return tax.Deduction{}, fmt.Errorf("deduction %q: want category=amount", s)
	}
	cat, err := tax.ParseCategory(name)
	if err != nil {
		return tax.Deduction{}, err
	}
	a, err := money.ParseAmount(curr.Code(), amount)
	if err != nil {
		return tax.Deduction{}, fmt.Errorf("deduction %q: %w", s, err)
	}
	return tax.Deduction{Category: cat, Amount: a}, nil
}

func runTax(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	name := args[0]
	curr := money.XXX
	for _, info := range a.svc.Schedules(cmd.Context()) {
		if info.Name == name {
			curr = info.Curr
		}
	}
	if curr == money.XXX {
		return fmt.Errorf("unknown tax schedule %q", name)
	}

	income, err := money.ParseAmount(curr.Code(), args[1])
	if err != nil {
		return err
	}
	deductions := make([]tax.Deduction, 0, len(taxDeductions))
	for _, s := range taxDeductions {
		d, err := parseDeduction(curr, s)
		if err != nil {
			return err
		}
		deductions = append(deductions, d)
	}

	as, err := a.svc.Assess(cmd.Context(), name, income, deductions)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "income\t%v\n", as.Income.RoundToCurr())
	fmt.Fprintf(w, "deductions\t%v\n", as.Deductions.RoundToCurr())
	fmt.Fprintf(w, "taxable\t%v\n", as.Taxable.RoundToCurr())
	for _, l := range as.Lines {
		fmt.Fprintf(w, "  %v\t%v\n", l.Bracket, l.Tax.RoundToCurr())
	}
	fmt.Fprintf(w, "tax\t%v\n", as.Tax.RoundToCurr())
	fmt.Fprintf(w, "marginal rate\t%v\n", as.MarginalRate)
	fmt.Fprintf(w, "effective rate\t%v\n", as.EffectiveRate.Round(4))
	return w.Flush()
}

func runSchedules(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	for _, info := range a.svc.Schedules(cmd.Context()) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%v)\n", info.Name, info.Curr)
		for _, b := range info.Brackets {
			fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", b)
		}
	}
	return nil
}
