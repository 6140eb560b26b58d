package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
	"github.com/mabhi256/r8deobf/internal/tui"
	"github.com/mabhi256/r8deobf/utils"
)

var browseCmd = &cobra.Command{
	Use:               "browse [mapping-file]",
	Short:             "Launch an interactive browser over a ProGuard/R8 mapping",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".txt"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read mapping: %w", err)
		}

		m := mapping.New(buf)
		if !m.IsValid() {
			fmt.Println("Warning: file does not look like a ProGuard/R8 mapping, proceeding anyway...")
		}

		idx := classindex.Build(m)
		return tui.StartTUI(idx)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
