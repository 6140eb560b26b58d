package remap

import "strings"

// SynthesizeSourceFile derives a plausible source file name from an
// original class name when no explicit sourceFile header is available.
// referenceFile, if non-empty, supplies the extension to inherit;
// otherwise ".java" is assumed, except for Kotlin top-level classes
// (a terminal "Kt" of more than two characters), which always get ".kt"
// regardless of referenceFile.
func SynthesizeSourceFile(className, referenceFile string) (string, bool) {
	base, ok := extractClassName(className)
	if !ok {
		return "", false
	}

	if strings.HasSuffix(base, "Kt") && len(base) > 2 {
		return base[:len(base)-2] + ".kt", true
	}

	if idx := strings.LastIndexByte(referenceFile, '.'); idx >= 0 {
		return base + referenceFile[idx:], true
	}
	return base + ".java", true
}

// extractClassName returns the terminal segment of a dotted class name,
// truncated at the first '$' for nested classes.
func extractClassName(fullPath string) (string, bool) {
	if fullPath == "" {
		return "", false
	}
	segments := strings.Split(fullPath, ".")
	last := segments[len(segments)-1]
	if last == "" {
		return "", false
	}
	if idx := strings.IndexByte(last, '$'); idx >= 0 {
		last = last[:idx]
	}
	return last, true
}
