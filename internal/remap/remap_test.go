package remap

import (
	"testing"

	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/internal/mapping"
)

func mapper(src string) *Mapper {
	idx := classindex.Build(mapping.New([]byte(src)))
	return New(idx)
}

func TestRemapClass(t *testing.T) {
	m := mapper("android.arch.core.executor.ArchTaskExecutor -> a.a.a.a.c:\n")
	orig, ok := m.RemapClass("a.a.a.a.c")
	if !ok || orig != "android.arch.core.executor.ArchTaskExecutor" {
		t.Fatalf("unexpected remap: %q, %v", orig, ok)
	}
	if _, ok := m.RemapClass("android.arch.core.executor.ArchTaskExecutor"); ok {
		t.Fatalf("expected no match for already-original name")
	}
}

func TestRemapFrameDisambiguationByLine(t *testing.T) {
	m := mapper("ArrayLinkedVariables -> a.a:\n" +
		"    320:320:void remove():320:320 -> a\n" +
		"    200:200:void put():200:200 -> a\n")

	frames, _ := m.RemapFrame(Frame{Class: "a.a", Method: "a", Line: 320}, Carry{})
	if len(frames) != 1 || frames[0].Method != "remove" || frames[0].Line != 320 {
		t.Fatalf("unexpected frames at 320: %+v", frames)
	}

	frames, _ = m.RemapFrame(Frame{Class: "a.a", Method: "a", Line: 200}, Carry{})
	if len(frames) != 1 || frames[0].Method != "put" || frames[0].Line != 200 {
		t.Fatalf("unexpected frames at 200: %+v", frames)
	}
}

func TestRemapFrameLineArithmetic(t *testing.T) {
	m := mapper("com.example.Foo -> a:\n" +
		"    100:110:void bar():50:60 -> b\n")
	frames, _ := m.RemapFrame(Frame{Class: "a", Method: "b", Line: 105}, Carry{})
	if len(frames) != 1 || frames[0].Line != 55 {
		t.Fatalf("expected line 55, got %+v", frames)
	}
}

func TestRemapFrameForeignClassInlineExpansion(t *testing.T) {
	m := mapper("MainActivity -> MainActivity:\n" +
		"    1016:1016:void com.example1.domain.MyBean.doWork():16:16 -> buttonClicked\n" +
		"    1016:1016:void onClick():29 -> buttonClicked\n")

	frames, _ := m.RemapFrame(Frame{Class: "MainActivity", Method: "buttonClicked", Line: 1016}, Carry{})
	if len(frames) != 2 {
		t.Fatalf("want 2 frames, got %d: %+v", len(frames), frames)
	}
	if frames[0].Class != "com.example1.domain.MyBean" || frames[0].Method != "doWork" || frames[0].Line != 16 {
		t.Fatalf("unexpected innermost frame: %+v", frames[0])
	}
	if frames[0].HasFile {
		t.Fatalf("expected foreign frame to have no file, got %+v", frames[0])
	}
	if frames[1].Class != "MainActivity" || frames[1].Method != "onClick" || frames[1].Line != 29 {
		t.Fatalf("unexpected outer frame: %+v", frames[1])
	}
}

func TestRemapFrameNoMatchReturnsEmpty(t *testing.T) {
	m := mapper("com.example.Foo -> a:\n" +
		"    1:10:void bar():1:10 -> b\n")
	frames, _ := m.RemapFrame(Frame{Class: "a", Method: "b", Line: 99}, Carry{})
	if len(frames) != 0 {
		t.Fatalf("expected no match, got %+v", frames)
	}
	frames, _ = m.RemapFrame(Frame{Class: "missing", Method: "b", Line: 1}, Carry{})
	if len(frames) != 0 {
		t.Fatalf("expected no match for missing class, got %+v", frames)
	}
}

func TestRemapFrameSourceFilePropagation(t *testing.T) {
	m := mapper("com.example.Foo -> a:\n" +
		"# sourceFile: \"Foo.java\"\n" +
		"    void bar() -> b\n")
	frames, _ := m.RemapFrame(Frame{Class: "a", Method: "b", Line: 1}, Carry{})
	if len(frames) != 1 || !frames[0].HasFile || frames[0].File != "Foo.java" {
		t.Fatalf("unexpected frame: %+v", frames)
	}
}

func TestRemapMethodAmbiguity(t *testing.T) {
	m := mapper("com.example.Foo -> a:\n" +
		"    void bar() -> b\n" +
		"    void baz() -> b\n")
	if _, _, ok := m.RemapMethod("a", "b"); ok {
		t.Fatalf("expected ambiguous lookup to fail")
	}

	unambiguous := mapper("com.example.Foo -> a:\n" +
		"    10:10:void bar():10:10 -> b\n" +
		"    20:20:void bar():10:10 -> b\n")
	cls, method, ok := unambiguous.RemapMethod("a", "b")
	if !ok || cls != "com.example.Foo" || method != "bar" {
		t.Fatalf("expected unambiguous resolution, got %q %q %v", cls, method, ok)
	}
}

func TestRemapFrameOutlineCarry(t *testing.T) {
	m := mapper("com.example.Foo -> a:\n" +
		"    5:5:void caller():40:40 -> c\n" +
		"# com.android.tools.r8.outlineCallsite: 5=77\n" +
		"    1:200:void outline():0:0 -> o\n" +
		"# com.android.tools.r8.outline: true\n")

	_, carry := m.RemapFrame(Frame{Class: "a", Method: "c", Line: 5}, Carry{})
	if !carry.HasLine || carry.Line != 77 {
		t.Fatalf("expected carried line 77, got %+v", carry)
	}

	frames, _ := m.RemapFrame(Frame{Class: "a", Method: "o", Line: 1}, carry)
	if len(frames) != 1 || frames[0].Line != 76 {
		t.Fatalf("expected outline target to adopt carried line, got %+v", frames)
	}
}

func TestSynthesizeSourceFile(t *testing.T) {
	cases := []struct {
		class, ref, want string
	}{
		{"com.example.MainKt", "Other.java", "Main.kt"},
		{"com.example.Main", "Other.kt", "Main.kt"},
		{"com.example.MainKt", "", "Main.kt"},
		{"com.example.Main$Inner", "", "Main.java"},
	}
	for _, c := range cases {
		got, ok := SynthesizeSourceFile(c.class, c.ref)
		if !ok || got != c.want {
			t.Fatalf("SynthesizeSourceFile(%q, %q) = %q, %v; want %q", c.class, c.ref, got, ok, c.want)
		}
	}
}
