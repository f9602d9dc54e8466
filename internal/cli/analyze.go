package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phazegen/hgtscan/internal/fasta"
	"github.com/phazegen/hgtscan/internal/middleware"
)

// analyzeCmd runs one offline analysis against a FASTA or raw sequence file.
var analyzeCmd = &cobra.Command{
	Use:                        "analyze [file]",
	Short:                      "Analyze a sequence file (FASTA or raw) and print the risk report as JSON",
	Args:                       cobra.MaximumNArgs(1),
	RunE:                       runAnalyze,
	SuggestionsMinimumDistance: 3,
}

func init() {
	analyzeCmd.Flags().StringP("sample", "s", "", "sample identifier (default: file name)")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var (
		content []byte
		err     error
		name    = "stdin"
	)
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
		name = filepath.Base(args[0])
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	seq, header := fasta.Extract(string(content))
	if err := middleware.ValidateSequence(seq); err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetString("sample")
	if sample == "" {
		if header != "" {
			sample = header
		} else {
			sample = name
		}
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}
	result := eng.Analyze(seq, middleware.SanitizeSampleID(sample))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
