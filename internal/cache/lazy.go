package cache

import (
	"sync"

	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
)

// IndexedCache is a lazy, per-class view over a mapping: member index
// construction for a class is deferred until that class is first looked
// up, then memoized. Concurrent first-lookups for the same class
// converge on one build, satisfying the one-shot contract a mmap-backed
// cache needs when only a handful of classes in a large mapping are
// ever queried.
type IndexedCache struct {
	entries map[string]*lazyEntry
}

type lazyEntry struct {
	body  []byte
	once  sync.Once
	class *classindex.Class
}

// NewIndexedCache splits m's bytes into per-class bodies without parsing
// any method or field lines; that work is deferred to the first Class
// lookup for each name.
func NewIndexedCache(m *mapping.Mapping) *IndexedCache {
	ic := &IndexedCache{entries: map[string]*lazyEntry{}}
	for name, body := range SplitClassBodies(m.Source()) {
		ic.entries[name] = &lazyEntry{body: body}
	}
	return ic
}

// Class returns the materialized class index entry, building it on the
// first call for that obfuscated name and reusing it afterward.
func (ic *IndexedCache) Class(obfuscated string) (*classindex.Class, bool) {
	entry, ok := ic.entries[obfuscated]
	if !ok {
		return nil, false
	}
	entry.once.Do(func() {
		idx := classindex.Build(mapping.New(entry.body))
		entry.class, _ = idx.Class(obfuscated)
	})
	return entry.class, true
}

// SplitClassBodies splits raw mapping bytes into per-class chunks, each
// running from a class header line up to (but not including) the next
// one. It classifies lines using the same un-indented, non-'#' rule the
// tokenizer uses for Class records, without parsing class names itself;
// the obfuscated name for each chunk is read back out of it by
// tokenizing just that chunk's first record.
func SplitClassBodies(source []byte) map[string][]byte {
	bodies := map[string][]byte{}

	starts := classLineStarts(source)
	for i, start := range starts {
		end := len(source)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunk := source[start:end]
		if name, ok := firstClassName(chunk); ok {
			bodies[name] = chunk
		}
	}
	return bodies
}

func classLineStarts(source []byte) []int {
	var starts []int
	lineStart := 0
	for i := 0; i <= len(source); i++ {
		if i == len(source) || source[i] == '\n' || source[i] == '\r' {
			if i > lineStart && isClassLineStart(source[lineStart:i]) {
				starts = append(starts, lineStart)
			}
			lineStart = i + 1
		}
	}
	return starts
}

func isClassLineStart(line []byte) bool {
	if len(line) == 0 || line[0] == '#' {
		return false
	}
	return !(len(line) >= 4 && line[0] == ' ' && line[1] == ' ' && line[2] == ' ' && line[3] == ' ')
}

func firstClassName(chunk []byte) (string, bool) {
	it := mapping.New(chunk).Records()
	rec, err := it.Next()
	if err != nil {
		return "", false
	}
	if c, ok := rec.(mapping.ClassRecord); ok {
		return c.Obfuscated, true
	}
	return "", false
}
