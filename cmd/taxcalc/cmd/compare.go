package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govalues/moneytax/money"
)

var compareCmd = &cobra.Command{
	Use:   "compare <a> <a-currency> <b> <b-currency>",
	Short: "Compare two amounts in possibly different currencies",
	Long: `Compares two amounts. The second amount is converted to the currency of
the first one before comparing.

Example:
  taxcalc compare 1 USD 2 CAD`,
	Args: cobra.ExactArgs(4),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	x, err := money.ParseAmount(args[1], args[0])
	if err != nil {
		return err
	}
	y, err := money.ParseAmount(args[3], args[2])
	if err != nil {
		return err
	}
	a, err := setup()
	if err != nil {
		return err
	}
	c, err := a.svc.Compare(cmd.Context(), x, y)
	if err != nil {
		return err
	}
	op := "="
	switch {
	case c < 0:
		op = "<"
	case c > 0:
		op = ">"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v %s %v\n", x, op, y)
	return nil
}
