package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scrimlib/scrim/terminfo"
)

var evalRaw bool

var evalCmd = &cobra.Command{
	Use:   "eval <template> [param...]",
	Short: "Expand a parameterized capability template",
	Long: `Expand a terminfo % template with the given integer parameters, e.g.

  scrim-info eval '\x1b[%i%p1%d;%p2%dH' 4 9

The result is printed quoted unless --raw is set.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&evalRaw, "raw", false, "write the expanded bytes unquoted")
}

func runEval(cmd *cobra.Command, args []string) {
	out, err := evalTemplate(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if evalRaw {
		os.Stdout.WriteString(out)
		return
	}
	fmt.Printf("%q\n", out)
}

// evalTemplate unquotes the template, parses the integer parameters and
// expands the result.
func evalTemplate(tpl string, args []string) (string, error) {
	template, err := strconv.Unquote(`"` + tpl + `"`)
	if err != nil {
		return "", fmt.Errorf("bad template: %w", err)
	}
	params := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return "", fmt.Errorf("parameter %q is not an integer", a)
		}
		params = append(params, n)
	}
	return terminfo.TParm(template, params...), nil
}
