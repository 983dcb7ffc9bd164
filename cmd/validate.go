package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate an imgfit report and check the converted files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	r, err := report.ReadJSON(reportPath)
	if err != nil {
		return err
	}

	errs := report.Validate(r, filepath.Dir(reportPath))
	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d converted, %d failed, all outputs present\n", r.Stats.Converted, r.Stats.Failed)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}
