package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mabhi256/r8deobf/internal/artifact"
	"github.com/mabhi256/r8deobf/internal/cache"
	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
	"github.com/mabhi256/r8deobf/utils"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Build and inspect binary mapping caches (.prgcache)",
}

var cacheOutputPath string

var cacheBuildCmd = &cobra.Command{
	Use:               "build [mapping-file]",
	Short:             "Write a .prgcache file from a ProGuard/R8 mapping.txt",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".txt"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		mappingPath := args[0]
		buf, err := os.ReadFile(mappingPath)
		if err != nil {
			return fmt.Errorf("read mapping: %w", err)
		}

		m := mapping.New(buf)
		if !m.IsValid() {
			return fmt.Errorf("%s does not look like a ProGuard/R8 mapping", mappingPath)
		}

		idx := classindex.Build(m)
		blob, err := cache.Write(idx)
		if err != nil {
			return fmt.Errorf("encode cache: %w", err)
		}

		out := cacheOutputPath
		if out == "" {
			out = strings.TrimSuffix(mappingPath, filepath.Ext(mappingPath)) + ".prgcache"
		}
		if err := os.WriteFile(out, blob, 0644); err != nil {
			return fmt.Errorf("write cache: %w", err)
		}

		summary := m.Summary()
		fmt.Printf("✅ Wrote %s (%d classes, %d methods, %d bytes)\n", out, summary.ClassCount, summary.MethodCount, len(blob))
		fmt.Printf("   artifact id: %s\n", artifact.Of(m))
		return nil
	},
}

var cacheInspectCmd = &cobra.Command{
	Use:               "inspect [cache-file]",
	Short:             "Print a .prgcache file's header and summary",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".prgcache"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read cache: %w", err)
		}

		c, err := cache.Parse(buf)
		if err != nil {
			return fmt.Errorf("parse cache: %w", err)
		}

		fmt.Printf("file:    %s\n", args[0])
		fmt.Printf("size:    %d bytes\n", len(buf))
		fmt.Printf("classes: %d\n", c.NumClasses())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheBuildCmd)
	cacheCmd.AddCommand(cacheInspectCmd)

	cacheBuildCmd.Flags().StringVarP(&cacheOutputPath, "output", "o", "", "output path (default: <mapping>.prgcache)")
}
