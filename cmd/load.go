package cmd

import (
	"fmt"
	"os"

	"github.com/mabhi256/r8deobf/internal/cache"
	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
	"github.com/mabhi256/r8deobf/internal/remap"
)

// loadedMapper bundles the two interfaces cmd/ callers need: one to
// remap stack-trace frames, one to resolve bare class names. A
// *remap.Mapper and a *cache.Cache both satisfy them, so the rest of
// the command tree never has to branch on which source was loaded.
type loadedMapper struct {
	remap.FrameRemapper
	remap.ClassRemapper
}

// loadRemapper opens a binary cache (cachePath) or a text mapping
// (mappingPath), whichever is given, and returns a value usable for
// both frame and class remapping. Exactly one path must be non-empty.
func loadRemapper(mappingPath, cachePath string) (loadedMapper, error) {
	switch {
	case cachePath != "":
		buf, err := os.ReadFile(cachePath)
		if err != nil {
			return loadedMapper{}, fmt.Errorf("read cache: %w", err)
		}
		c, err := cache.Parse(buf)
		if err != nil {
			return loadedMapper{}, fmt.Errorf("parse cache: %w", err)
		}
		return loadedMapper{FrameRemapper: c, ClassRemapper: c}, nil

	case mappingPath != "":
		buf, err := os.ReadFile(mappingPath)
		if err != nil {
			return loadedMapper{}, fmt.Errorf("read mapping: %w", err)
		}
		m := mapping.New(buf)
		if !m.IsValid() {
			fmt.Println("Warning: file does not look like a ProGuard/R8 mapping, proceeding anyway...")
		}
		mapper := remap.New(classindex.Build(m))
		return loadedMapper{FrameRemapper: mapper, ClassRemapper: mapper}, nil

	default:
		return loadedMapper{}, fmt.Errorf("one of --mapping or --cache is required")
	}
}
