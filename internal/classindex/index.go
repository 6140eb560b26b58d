// Package classindex builds an in-memory index over a parsed mapping:
// obfuscated class name -> original class, with each class's methods
// kept in mapping-file order so the remap engine can expand inline
// stacks by walking them linearly.
package classindex

import (
	"io"
	"sort"

	"github.com/mabhi256/r8deobf/internal/mapping"
)

// Member is one original-frame candidate for an obfuscated method name.
// A single obfuscated name can have several Members sharing identical
// ObfStart/ObfEnd when the compiler inlined a call chain into it; those
// are kept as separate, ordered entries, never merged.
type Member struct {
	// OriginalClass is the enclosing class's original name, unless this
	// is a foreign inlined frame, in which case it is the callee's own
	// original class name.
	OriginalClass  string
	IsForeign      bool
	OriginalMethod string
	Arguments      string

	HasRange bool
	ObfStart int
	ObfEnd   int

	// OrigStart/OrigEnd describe the original line range. HasOrigEnd
	// false means this member carries no per-line mapping and OrigStart
	// is used as-is: it is an inline-stack parent, or a member with no
	// line range at all (OrigStart is then 0).
	OrigStart  int
	HasOrigEnd bool
	OrigEnd    int

	SourceFile    string
	HasSourceFile bool

	IsSynthesized bool
	IsOutline     bool
	// OutlineCallsite maps an obfuscated line to the original line at
	// the call site, for methods marked as outline callsites.
	OutlineCallsite map[int]int
}

// Class is one obfuscated<->original class mapping, with its methods
// indexed by obfuscated name.
type Class struct {
	ObfuscatedName string
	OriginalName   string
	SourceFile     string
	HasSourceFile  bool

	// Members is keyed by obfuscated method name; each slice preserves
	// mapping-file order exactly (the inline-stack order). Never sorted.
	Members map[string][]*Member
}

// Index is the full, immutable-once-built mapping index.
type Index struct {
	classesByObfuscated map[string]*Class
}

// Class looks up a class by its obfuscated name.
func (idx *Index) Class(obfuscated string) (*Class, bool) {
	c, ok := idx.classesByObfuscated[obfuscated]
	return c, ok
}

// SortedObfuscatedNames returns every obfuscated class name, sorted. The
// binary cache writer lays out class and member records in this order so
// the resulting blob supports binary search by obfuscated name.
func (idx *Index) SortedObfuscatedNames() []string {
	names := make([]string, 0, len(idx.classesByObfuscated))
	for name := range idx.classesByObfuscated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build walks every record in m and constructs an Index. A Method record
// encountered before any Class record aborts the whole pass: the build
// returns an empty Index rather than attach a method to no class.
func Build(m *mapping.Mapping) *Index {
	idx := &Index{classesByObfuscated: map[string]*Class{}}

	it := m.Records()
	var current *Class
	var lastMember *Member
	afterClassHeader := false

	flush := func() {
		if current != nil {
			idx.classesByObfuscated[current.ObfuscatedName] = current
		}
	}

	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		switch r := rec.(type) {
		case mapping.ClassRecord:
			flush()
			current = &Class{
				ObfuscatedName: r.Obfuscated,
				OriginalName:   r.Original,
				Members:        map[string][]*Member{},
			}
			lastMember = nil
			afterClassHeader = true

		case mapping.R8HeaderRecord:
			if afterClassHeader && current != nil {
				current.SourceFile = r.SourceFile
				current.HasSourceFile = true
			}

		case mapping.HeaderRecord:
			switch {
			case afterClassHeader:
				// Unrecognized class-level header: consumed, no effect.
			case lastMember != nil:
				applyMemberAnnotation(lastMember, r)
			}

		case mapping.FieldRecord:
			afterClassHeader = false
			lastMember = nil

		case mapping.MethodRecord:
			afterClassHeader = false
			if current == nil {
				return &Index{classesByObfuscated: map[string]*Class{}}
			}
			member := newMember(current, r)
			current.Members[r.Obfuscated] = append(current.Members[r.Obfuscated], member)
			lastMember = member
		}
	}

	flush()
	return idx
}

func newMember(class *Class, r mapping.MethodRecord) *Member {
	m := &Member{
		OriginalClass:  class.OriginalName,
		OriginalMethod: r.Original,
		Arguments:      r.Arguments,
		SourceFile:     class.SourceFile,
		HasSourceFile:  class.HasSourceFile,
	}
	if r.HasOriginalClass {
		m.OriginalClass = r.OriginalClass
		m.IsForeign = r.OriginalClass != class.OriginalName
	}

	if r.Range == nil {
		return m
	}
	m.HasRange = true
	m.ObfStart, m.ObfEnd = r.Range.ObfStart, r.Range.ObfEnd

	switch {
	case r.Range.HasOrig && r.Range.HasOrigEnd:
		m.OrigStart, m.HasOrigEnd, m.OrigEnd = r.Range.OrigStart, true, r.Range.OrigEnd
	case r.Range.HasOrig:
		// inline-stack parent: single original line, no per-line arithmetic.
		m.OrigStart, m.HasOrigEnd = r.Range.OrigStart, false
	default:
		// no original range at all: it equals the obfuscated range.
		m.OrigStart, m.HasOrigEnd, m.OrigEnd = m.ObfStart, true, m.ObfEnd
	}
	return m
}

func applyMemberAnnotation(member *Member, h mapping.HeaderRecord) {
	switch h.Key {
	case "com.android.tools.r8.synthesized":
		member.IsSynthesized = true
	case "com.android.tools.r8.outline":
		member.IsOutline = true
	case "com.android.tools.r8.outlineCallsite":
		member.OutlineCallsite = parseOutlineCallsite(h.Value)
	}
}
