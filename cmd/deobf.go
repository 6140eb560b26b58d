package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mabhi256/r8deobf/internal/javasig"
	"github.com/mabhi256/r8deobf/internal/stacktrace"
	"github.com/mabhi256/r8deobf/utils"
)

var (
	deobfMappingPath string
	deobfCachePath   string
	deobfCopy        bool
	deobfPretty      bool
	deobfDescriptor  string
)

var deobfCmd = &cobra.Command{
	Use: "deobf [stacktrace-file]",
	Short: `Remap an obfuscated Android stack trace.

Reads a stack trace from a file or, when no file is given, from
stdin, and rewrites every frame through a ProGuard/R8 mapping or a
prebuilt binary cache (see 'r8deobf cache build').

Examples:
  r8deobf deobf --mapping mapping.txt crash.txt
  adb logcat | r8deobf deobf --cache mapping.prgcache
  r8deobf deobf --mapping mapping.txt --copy crash.txt
  r8deobf deobf --mapping mapping.txt --pretty-signatures --descriptor "(Ljava/lang/String;I)V"`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".txt", ".log"}, true),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadRemapper(deobfMappingPath, deobfCachePath)
		if err != nil {
			return err
		}

		if deobfPretty {
			if deobfDescriptor == "" {
				return fmt.Errorf("--pretty-signatures requires --descriptor")
			}
			sig, ok := javasig.FormatSignature(deobfDescriptor, m.ClassRemapper)
			if !ok {
				return fmt.Errorf("malformed method descriptor: %s", deobfDescriptor)
			}
			fmt.Println(sig)
			return nil
		}

		var input []byte
		if len(args) == 1 {
			input, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read stack trace: %w", err)
			}
		} else {
			input, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		trace, ok := stacktrace.Parse(string(input))
		if !ok {
			return fmt.Errorf("no recognizable stack trace in input")
		}

		output := stacktrace.Remap(m.FrameRemapper, trace).String()
		fmt.Print(output)

		if deobfCopy {
			if err := clipboard.WriteAll(output); err != nil {
				fmt.Printf("Warning: could not copy to clipboard: %v\n", err)
			} else {
				fmt.Println("📋 Copied remapped trace to clipboard")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deobfCmd)

	deobfCmd.Flags().StringVarP(&deobfMappingPath, "mapping", "m", "", "ProGuard/R8 mapping.txt file")
	deobfCmd.Flags().StringVarP(&deobfCachePath, "cache", "c", "", "prebuilt .prgcache file (see 'r8deobf cache build')")
	deobfCmd.Flags().BoolVar(&deobfCopy, "copy", false, "copy the remapped trace to the clipboard")
	deobfCmd.Flags().BoolVar(&deobfPretty, "pretty-signatures", false, "render --descriptor as a human-readable Java signature")
	deobfCmd.Flags().StringVar(&deobfDescriptor, "descriptor", "", "an obfuscated JVM method descriptor to deobfuscate, e.g. \"(Ljava/lang/String;I)V\"")

	deobfCmd.MarkFlagsMutuallyExclusive("mapping", "cache")
	deobfCmd.MarkFlagFilename("mapping", "txt")
	deobfCmd.MarkFlagFilename("cache", "prgcache")
}
