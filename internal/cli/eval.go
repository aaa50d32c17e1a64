package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/pkg/expr"
)

// newEvalCmd creates the eval command.
func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate a calculator expression",
		Long: `Evaluate a calculator expression.

This is the same restricted calculator that entity attribute fields
accept: numbers, + - * / ^, parentheses, and the functions sqrt, sin,
cos, tan plus the constants pi and e.

Examples:

  planesketch eval "2*pi/3"
  planesketch eval "sqrt(2)/2"
  planesketch eval "-2^2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			v, err := expr.Eval(input)
			if err != nil {
				printError("Invalid expression: %s", input)
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
}
