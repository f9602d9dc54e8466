package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// patternsCmd lists the loaded signature catalog.
var patternsCmd = &cobra.Command{
	Use:                        "patterns",
	Short:                      "List the signature catalog: pattern names, high-risk replicons and critical genes",
	Args:                       cobra.NoArgs,
	RunE:                       runPatterns,
	SuggestionsMinimumDistance: 3,
}

func init() {
	RootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(eng.Patterns(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
