package classindex

import (
	"testing"

	"github.com/mabhi256/r8deobf/internal/mapping"
)

func build(src string) *Index {
	return Build(mapping.New([]byte(src)))
}

func TestBuildClassAndMethod(t *testing.T) {
	idx := build("android.app.Activity -> a.b.c:\n" +
		"    1:1:void onCreate(android.os.Bundle):100:100 -> a\n")

	c, ok := idx.Class("a.b.c")
	if !ok {
		t.Fatalf("expected class a.b.c in index")
	}
	if c.OriginalName != "android.app.Activity" {
		t.Fatalf("unexpected original name: %q", c.OriginalName)
	}

	members := c.Members["a"]
	if len(members) != 1 {
		t.Fatalf("want 1 member, got %d", len(members))
	}
	m := members[0]
	if m.OriginalMethod != "onCreate" || m.IsForeign {
		t.Fatalf("unexpected member: %+v", m)
	}
	if !m.HasRange || m.ObfStart != 1 || m.ObfEnd != 1 {
		t.Fatalf("unexpected obf range: %+v", m)
	}
	if !m.HasOrigEnd || m.OrigStart != 100 || m.OrigEnd != 100 {
		t.Fatalf("unexpected orig range: %+v", m)
	}
}

func TestBuildSourceFilePropagatesToMembers(t *testing.T) {
	idx := build("android.app.Activity -> a.b.c:\n" +
		"# sourceFile: \"Activity.java\"\n" +
		"    void onCreate() -> a\n")

	c, _ := idx.Class("a.b.c")
	if !c.HasSourceFile || c.SourceFile != "Activity.java" {
		t.Fatalf("expected class sourceFile, got %+v", c)
	}
	m := c.Members["a"][0]
	if !m.HasSourceFile || m.SourceFile != "Activity.java" {
		t.Fatalf("expected member to inherit sourceFile, got %+v", m)
	}
}

func TestBuildSourceFileAfterMemberIsIgnored(t *testing.T) {
	idx := build("android.app.Activity -> a.b.c:\n" +
		"    void onCreate() -> a\n" +
		"# sourceFile: \"Activity.java\"\n")

	c, _ := idx.Class("a.b.c")
	if c.HasSourceFile {
		t.Fatalf("sourceFile appearing after a member must not apply: %+v", c)
	}
}

func TestBuildInlineStackPreservesOrder(t *testing.T) {
	idx := build("com.example.Foo -> a:\n" +
		"    13:13:void outer():40:40 -> a\n" +
		"    13:13:void com.example.Bar.inner():7:7 -> a\n")

	c, _ := idx.Class("a")
	members := c.Members["a"]
	if len(members) != 2 {
		t.Fatalf("want 2 members sharing one obfuscated slot, got %d", len(members))
	}
	if members[0].OriginalMethod != "outer" || members[0].IsForeign {
		t.Fatalf("unexpected first frame: %+v", members[0])
	}
	if members[1].OriginalMethod != "inner" || !members[1].IsForeign || members[1].OriginalClass != "com.example.Bar" {
		t.Fatalf("unexpected second frame: %+v", members[1])
	}
	if members[0].ObfStart != members[1].ObfStart || members[0].ObfEnd != members[1].ObfEnd {
		t.Fatalf("expected identical obf ranges for collapsed inline frames")
	}
}

func TestBuildInlineParentHasNoOrigEnd(t *testing.T) {
	idx := build("com.example.Foo -> a:\n" +
		"    10:12:void helper():5 -> b\n")
	m := idx.classesByObfuscated["a"].Members["b"][0]
	if !m.HasRange || m.OrigStart != 5 || m.HasOrigEnd {
		t.Fatalf("expected inline-parent with no orig end, got %+v", m)
	}
}

func TestBuildMethodBeforeClassAborts(t *testing.T) {
	idx := build("    void method() -> a\n" +
		"com.example.Foo -> a:\n" +
		"    void other() -> b\n")
	if _, ok := idx.Class("a"); ok {
		t.Fatalf("expected empty index after method-before-class abort")
	}
}

func TestBuildOutlineCallsiteAnnotation(t *testing.T) {
	idx := build("com.example.Foo -> a:\n" +
		"    13:13:void outline():0:0 -> a\n" +
		"# com.android.tools.r8.outline: true\n" +
		"# com.android.tools.r8.outlineCallsite: 13=46,14=50\n")

	m := idx.classesByObfuscated["a"].Members["a"][0]
	if !m.IsOutline {
		t.Fatalf("expected IsOutline, got %+v", m)
	}
	if m.OutlineCallsite[13] != 46 || m.OutlineCallsite[14] != 50 {
		t.Fatalf("unexpected outline callsite table: %+v", m.OutlineCallsite)
	}
}

func TestBuildSynthesizedAnnotation(t *testing.T) {
	idx := build("com.example.Foo -> a:\n" +
		"    void lambda$onClick$0() -> a\n" +
		"# com.android.tools.r8.synthesized: true\n")

	m := idx.classesByObfuscated["a"].Members["a"][0]
	if !m.IsSynthesized {
		t.Fatalf("expected IsSynthesized, got %+v", m)
	}
}

func TestBuildNoRangeMeansNoRange(t *testing.T) {
	idx := build("com.example.Foo -> a:\n" +
		"    void bare() -> a\n")
	m := idx.classesByObfuscated["a"].Members["a"][0]
	if m.HasRange {
		t.Fatalf("expected no range, got %+v", m)
	}
	if m.HasOrigEnd {
		t.Fatalf("bare member with no range should carry no orig bounds: %+v", m)
	}
}
