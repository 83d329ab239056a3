// =============================================================================
// Point Description Parser - Classify Command
// =============================================================================
//
// This file defines the 'classify' command, which runs single descriptions
// through the reorderer and prints what happened. It is meant for checking
// vocabularies and rule behaviour without preparing a point file.
//
// COMMAND USAGE:
//   descparse classify "1/4 PCF" "PCF MARKER SIGN"
//
// OUTPUT:
//   1/4 PCF          -> PCF \1/4          [one: size-property]
//   PCF MARKER SIGN  -> MARKER PCF /SIGN  [two: misc-first+third-text]
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ginjaninja78/point-description-parser/internal/description"
	"github.com/spf13/cobra"
)

// classifyCmd represents the 'classify' command.
var classifyCmd = &cobra.Command{
	Use:   "classify DESCRIPTION...",
	Short: "Reorder descriptions given on the command line",
	Long: `The classify command reorders each argument as if it were the description
field of a data row, and prints the result with the code count and the rules
that fired. The replacement dictionary is applied first when configured.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&noBypass, "no-bypass", false, "Reorder descriptions even when they contain a bypass token")
}

// runClassify prints one line per description argument.
func runClassify(descriptions []string) error {
	mainConfig, err := loadConfig()
	if err != nil {
		return err
	}
	if noBypass {
		mainConfig.Reorder.BypassPrecedence = string(description.PrecedenceNone)
	}
	if err := mainConfig.Validate(); err != nil {
		return err
	}

	engine, err := loadEngine(mainConfig)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, desc := range descriptions {
		input := engine.Dictionary.Replace(desc)
		after, outcome := engine.Reorderer.ReorderString(input)
		fmt.Fprintf(w, "%s\t-> %s\t[%s]\n", desc, after, explain(outcome))
	}
	return w.Flush()
}

// explain summarises an Outcome for display.
func explain(outcome description.Outcome) string {
	switch {
	case outcome.Bypassed:
		return "bypassed"
	case len(outcome.Rules) == 0:
		return outcome.Count.String() + ": no rule"
	default:
		return outcome.Count.String() + ": " + strings.Join(outcome.Rules, "+")
	}
}
