package cache

import (
	"encoding/binary"
	"sort"

	"github.com/mabhi256/r8deobf/internal/classindex"
)

// Write serializes idx into the binary cache format described by the
// package doc comment. Class records and their member bodies are laid
// out in the same ascending-by-obfuscated-name order used for the
// sorted class table, so body_offset never decreases across the class
// array (a class with no members shares the next class's offset); this
// lets each class's body end at the next class's body_offset, and the
// last class's at the start of the string table, instead of needing a
// stored member count.
func Write(idx *classindex.Index) ([]byte, error) {
	names := idx.SortedObfuscatedNames()
	st := newStringTable()

	classRecords := make([]byte, 0, len(names)*classRecordSize)
	memberRecords := make([]byte, 0)

	for _, name := range names {
		class, _ := idx.Class(name)

		bodyOffset := headerSize + align8(len(names)*classRecordSize) + len(memberRecords)

		methodNames := make([]string, 0, len(class.Members))
		for m := range class.Members {
			methodNames = append(methodNames, m)
		}
		sort.Strings(methodNames)

		for _, methodName := range methodNames {
			for _, mem := range class.Members[methodName] {
				memberRecords = append(memberRecords, encodeMember(st, methodName, mem)...)
			}
		}

		obfOff := st.intern(class.ObfuscatedName)
		origOff := st.intern(class.OriginalName)
		var fileOff uint32
		if class.HasSourceFile {
			fileOff = st.intern(class.SourceFile)
		}
		classRecords = binary.LittleEndian.AppendUint32(classRecords, obfOff)
		classRecords = binary.LittleEndian.AppendUint32(classRecords, origOff)
		classRecords = binary.LittleEndian.AppendUint32(classRecords, fileOff)
		classRecords = binary.LittleEndian.AppendUint32(classRecords, uint32(bodyOffset))
	}

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], version)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(names)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(st.buf)))

	out := make([]byte, 0, headerSize+len(classRecords)+len(memberRecords)+len(st.buf))
	out = append(out, header...)
	out = append(out, classRecords...)
	out = append(out, memberRecords...)
	out = append(out, st.buf...)
	return out, nil
}

func encodeMember(st *stringTable, obfuscatedMethod string, mem *classindex.Member) []byte {
	rec := make([]byte, 0, memberRecordSize)

	var originalClassOff, originalFileOff uint32
	if mem.IsForeign {
		originalClassOff = st.intern(mem.OriginalClass)
	}
	if mem.HasSourceFile {
		originalFileOff = st.intern(mem.SourceFile)
	}

	var flags uint32
	if mem.IsSynthesized {
		flags |= flagSynthesized
	}
	if mem.IsOutline {
		flags |= flagOutlineTarget
	}
	if !mem.HasOrigEnd {
		flags |= flagInlineParent
	}

	origEnd := mem.OrigEnd
	if !mem.HasOrigEnd {
		origEnd = 0
	}

	rec = binary.LittleEndian.AppendUint32(rec, st.intern(obfuscatedMethod))
	rec = binary.LittleEndian.AppendUint32(rec, uint32(mem.ObfStart))
	rec = binary.LittleEndian.AppendUint32(rec, uint32(mem.ObfEnd))
	rec = binary.LittleEndian.AppendUint32(rec, originalClassOff)
	rec = binary.LittleEndian.AppendUint32(rec, originalFileOff)
	rec = binary.LittleEndian.AppendUint32(rec, st.intern(mem.OriginalMethod))
	rec = binary.LittleEndian.AppendUint32(rec, uint32(mem.OrigStart))
	rec = binary.LittleEndian.AppendUint32(rec, uint32(origEnd))
	rec = binary.LittleEndian.AppendUint32(rec, st.intern(mem.Arguments))
	rec = binary.LittleEndian.AppendUint32(rec, flags)
	return rec
}
