package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govalues/moneytax/money"
)

var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount to another currency",
	Long: `Converts an amount using the configured exchange rates. The result is
rounded to the scale of the target currency.

Examples:
  taxcalc convert 10 USD CAD
  taxcalc convert 13 cad usd`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the configured exchange rates",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(ratesCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount, err := money.ParseAmount(args[1], args[0])
	if err != nil {
		return err
	}
	to, err := money.ParseCurr(args[2])
	if err != nil {
		return err
	}
	a, err := setup()
	if err != nil {
		return err
	}
	c, err := a.svc.Convert(cmd.Context(), amount, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v = %v (%v)\n", c.Original, c.Amount, c.Rate)
	return nil
}

func runRates(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	for _, r := range a.svc.Rates(cmd.Context()) {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}
