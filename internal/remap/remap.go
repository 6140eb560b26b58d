// Package remap turns a classindex.Index into lookups over obfuscated
// classes, methods, and stack frames, expanding inline stacks as it goes.
package remap

import "github.com/mabhi256/r8deobf/internal/classindex"

// Frame is one obfuscated or original stack frame, independent of the
// textual stack-trace format it might have been read from.
type Frame struct {
	Class   string
	Method  string
	Line    int
	File    string
	HasFile bool
}

// Carry threads the one unit of cross-frame state outline rewriting
// needs: the original line recorded at an outline callsite, carried
// forward from the frame that calls into the outline to the frame
// that represents the outline target itself.
type Carry struct {
	HasLine bool
	Line    int
}

// FrameRemapper is satisfied by anything that can expand a single
// obfuscated frame, whether backed by a live Index (Mapper) or a
// parsed binary cache (cache.Cache).
type FrameRemapper interface {
	RemapFrame(frame Frame, carry Carry) ([]Frame, Carry)
}

// ClassRemapper is satisfied by anything that can resolve an
// obfuscated class name, the one lookup internal/javasig needs to
// deobfuscate embedded class references in a method descriptor.
type ClassRemapper interface {
	RemapClass(obfuscated string) (string, bool)
}

// Mapper answers remap queries against a built Index.
type Mapper struct {
	idx *classindex.Index
}

// New wraps an Index for remap queries.
func New(idx *classindex.Index) *Mapper {
	return &Mapper{idx: idx}
}

// RemapClass resolves an obfuscated class name to its original name.
func (m *Mapper) RemapClass(obfuscated string) (string, bool) {
	c, ok := m.idx.Class(obfuscated)
	if !ok {
		return "", false
	}
	return c.OriginalName, true
}

// RemapMethod resolves an obfuscated (class, method) pair only when every
// member recorded under that obfuscated method name agrees on a single
// (original_class, original_method) pair. Ambiguous lookups return false.
func (m *Mapper) RemapMethod(obfuscatedClass, obfuscatedMethod string) (originalClass, originalMethod string, ok bool) {
	c, ok := m.idx.Class(obfuscatedClass)
	if !ok {
		return "", "", false
	}
	members, ok := c.Members[obfuscatedMethod]
	if !ok || len(members) == 0 {
		return "", "", false
	}

	originalClass, originalMethod = members[0].OriginalClass, members[0].OriginalMethod
	for _, mem := range members[1:] {
		if mem.OriginalClass != originalClass || mem.OriginalMethod != originalMethod {
			return "", "", false
		}
	}
	return originalClass, originalMethod, true
}

// RemapFrame expands a single obfuscated frame into zero or more original
// frames, innermost (most recently called) first. carry is the outline
// carry slot produced by the previous call in a stack-trace walk; the
// returned Carry must be threaded into the next call for that trace.
func (m *Mapper) RemapFrame(frame Frame, carry Carry) ([]Frame, Carry) {
	var nextCarry Carry

	class, ok := m.idx.Class(frame.Class)
	if !ok {
		return nil, nextCarry
	}
	members, ok := class.Members[frame.Method]
	if !ok {
		return nil, nextCarry
	}

	effectiveLine := frame.Line
	if carry.HasLine {
		for _, mem := range members {
			if mem.IsOutline {
				effectiveLine = carry.Line
				break
			}
		}
	}

	var out []Frame
	for _, mem := range members {
		if mem.OutlineCallsite != nil {
			if orig, ok := mem.OutlineCallsite[frame.Line]; ok {
				nextCarry = Carry{HasLine: true, Line: orig}
			}
		}

		if mem.HasRange && mem.ObfEnd > 0 {
			if effectiveLine < mem.ObfStart || effectiveLine > mem.ObfEnd {
				continue
			}
		}

		line := mem.OrigStart
		if mem.HasOrigEnd {
			line = mem.OrigStart + (effectiveLine - mem.ObfStart)
		}

		outClass := class.OriginalName
		var file string
		var hasFile bool
		if mem.IsForeign {
			outClass = mem.OriginalClass
			// file is unknown for a foreign frame unless synthesized
			// explicitly by the caller; see SynthesizeSourceFile.
		} else if mem.HasSourceFile {
			file, hasFile = mem.SourceFile, true
		} else if frame.HasFile {
			file, hasFile = frame.File, true
		}

		out = append(out, Frame{
			Class:   outClass,
			Method:  mem.OriginalMethod,
			Line:    line,
			File:    file,
			HasFile: hasFile,
		})
	}
	return out, nextCarry
}
