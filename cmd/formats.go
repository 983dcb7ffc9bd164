package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/config"
	"github.com/AnyUserName/imgfit-cli/internal/tui"
)

var formatsFlags = config.Default()

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats supported in this environment",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	addEncoderFlags(formatsCmd, &formatsFlags)
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, formatsFlags)
	if err != nil {
		return err
	}
	reg, caps := newEngine(cmd.Context(), cfg, newLogger())

	fmt.Println()
	for _, c := range codec.All {
		size := "fixed"
		if c.QualityAdjustable() {
			size = "quality search"
		}
		fmt.Printf("  %-14s %-4s %s\n", c.Label(), tui.Mark(caps.Supports(c)), size)
	}
	fmt.Println()
	for _, note := range caps.Notes() {
		fmt.Printf("  %s\n", tui.Note(note))
	}
	fmt.Printf("  %s\n\n", reg.String())
	return nil
}
