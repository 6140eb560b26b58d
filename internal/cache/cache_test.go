package cache

import (
	"reflect"
	"testing"

	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
	"github.com/mabhi256/r8deobf/internal/remap"
)

const sampleMapping = `com.example.MyActivity -> a.b.c:
    void onCreate(android.os.Bundle) -> a
    16:16:void doWork():16:16 -> a
    16:16:void doWork():16:16 -> b
com.example.MyBean -> a.b.d:
#sourceFile:"MyBean.java"
    16:16:void doWork():16:16 -> a
    1016:1016:void onClick():29 -> b
`

func buildIndex(t *testing.T, src string) *classindex.Index {
	t.Helper()
	return classindex.Build(mapping.New([]byte(src)))
}

func TestWriteParseRoundTripClass(t *testing.T) {
	idx := buildIndex(t, sampleMapping)
	blob, err := Write(idx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	c, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cls, ok := c.Class("a.b.c")
	if !ok {
		t.Fatalf("expected class a.b.c")
	}
	if cls.OriginalName != "com.example.MyActivity" {
		t.Errorf("OriginalName = %q", cls.OriginalName)
	}

	bean, ok := c.Class("a.b.d")
	if !ok {
		t.Fatalf("expected class a.b.d")
	}
	if !bean.HasSourceFile || bean.SourceFile != "MyBean.java" {
		t.Errorf("bean source file = %q, %v", bean.SourceFile, bean.HasSourceFile)
	}

	if _, ok := c.Class("nonexistent"); ok {
		t.Errorf("expected miss for unknown class")
	}
}

func TestWriteParseRoundTripMembers(t *testing.T) {
	idx := buildIndex(t, sampleMapping)
	blob, err := Write(idx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	c, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cls, _ := c.Class("a.b.c")
	members, err := cls.Members("a")
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members for obfuscated name a, got %d", len(members))
	}
	if members[0].OriginalMethod != "onCreate" {
		t.Errorf("members[0].OriginalMethod = %q", members[0].OriginalMethod)
	}
	if members[1].OriginalMethod != "doWork" {
		t.Errorf("members[1].OriginalMethod = %q", members[1].OriginalMethod)
	}
}

func TestRemapFrameMatchesInMemoryMapper(t *testing.T) {
	idx := buildIndex(t, sampleMapping)
	mm := remap.New(idx)

	blob, err := Write(idx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	c, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cases := []remap.Frame{
		{Class: "a.b.c", Method: "a", Line: 16},
		{Class: "a.b.d", Method: "b", Line: 1016, HasFile: true, File: "Unknown.java"},
	}

	for _, frame := range cases {
		want, _ := mm.RemapFrame(frame, remap.Carry{})
		got, _ := c.RemapFrame(frame, remap.Carry{})
		if !reflect.DeepEqual(want, got) {
			t.Errorf("frame %+v: in-memory = %+v, cache = %+v", frame, want, got)
		}
	}
}

func TestRemapClassAndMethod(t *testing.T) {
	idx := buildIndex(t, sampleMapping)
	blob, _ := Write(idx)
	c, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	original, ok := c.RemapClass("a.b.c")
	if !ok || original != "com.example.MyActivity" {
		t.Errorf("RemapClass = %q, %v", original, ok)
	}

	class, method, ok := c.RemapMethod("a.b.c", "a")
	if ok {
		t.Errorf("expected RemapMethod ambiguous for obfuscated name a, got %q.%q", class, method)
	}

	class, method, ok = c.RemapMethod("a.b.d", "a")
	if !ok || class != "com.example.MyBean" || method != "doWork" {
		t.Errorf("RemapMethod = %q.%q, %v", class, method, ok)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	idx := buildIndex(t, sampleMapping)
	blob, err := Write(idx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	t.Run("too short", func(t *testing.T) {
		_, err := Parse(blob[:8])
		assertErrKind(t, err, InvalidHeader)
	})

	t.Run("wrong endianness", func(t *testing.T) {
		flipped := append([]byte(nil), blob...)
		flipped[0], flipped[1], flipped[2], flipped[3] = flipped[3], flipped[2], flipped[1], flipped[0]
		_, err := Parse(flipped)
		assertErrKind(t, err, WrongEndianness)
	})

	t.Run("wrong format", func(t *testing.T) {
		garbled := append([]byte(nil), blob...)
		garbled[0] ^= 0xFF
		_, err := Parse(garbled)
		assertErrKind(t, err, WrongFormat)
	})

	t.Run("wrong version", func(t *testing.T) {
		bumped := append([]byte(nil), blob...)
		bumped[4] = 0xFF
		_, err := Parse(bumped)
		assertErrKind(t, err, WrongVersion)
	})

	t.Run("truncated classes", func(t *testing.T) {
		truncated := blob[:headerSize+4]
		_, err := Parse(truncated)
		assertErrKind(t, err, InvalidClasses)
	})

	t.Run("short string table", func(t *testing.T) {
		truncated := blob[:len(blob)-1]
		_, err := Parse(truncated)
		assertErrKind(t, err, UnexpectedStringBytes)
	})
}

func assertErrKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	cacheErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if cacheErr.Kind != want {
		t.Fatalf("expected kind %v, got %v", want, cacheErr.Kind)
	}
}

func TestSplitClassBodies(t *testing.T) {
	bodies := SplitClassBodies([]byte(sampleMapping))
	if len(bodies) != 2 {
		t.Fatalf("expected 2 class bodies, got %d", len(bodies))
	}
	if _, ok := bodies["a.b.c"]; !ok {
		t.Errorf("missing body for a.b.c")
	}
	if _, ok := bodies["a.b.d"]; !ok {
		t.Errorf("missing body for a.b.d")
	}
}

func TestIndexedCacheLazyLookup(t *testing.T) {
	m := mapping.New([]byte(sampleMapping))
	ic := NewIndexedCache(m)

	cls, ok := ic.Class("a.b.d")
	if !ok {
		t.Fatalf("expected class a.b.d")
	}
	if cls.OriginalName != "com.example.MyBean" {
		t.Errorf("OriginalName = %q", cls.OriginalName)
	}
	if !cls.HasSourceFile || cls.SourceFile != "MyBean.java" {
		t.Errorf("source file = %q, %v", cls.SourceFile, cls.HasSourceFile)
	}

	members, ok := cls.Members["b"]
	if !ok || len(members) != 1 {
		t.Fatalf("expected one member for obfuscated name b, got %v", members)
	}
	if members[0].OriginalMethod != "onClick" {
		t.Errorf("OriginalMethod = %q", members[0].OriginalMethod)
	}

	if _, ok := ic.Class("nonexistent"); ok {
		t.Errorf("expected miss for unknown class")
	}
}

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16}
	for in, want := range cases {
		if got := align8(in); got != want {
			t.Errorf("align8(%d) = %d, want %d", in, got, want)
		}
	}
}
