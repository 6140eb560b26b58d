package stacktrace

import "github.com/mabhi256/r8deobf/internal/remap"

// Remap walks every frame in t (and recursively in its causes),
// expanding each through m, and returns a new Trace holding the
// remapped frames in place of the originals. Raw (unparsed) lines and
// the exception/cause structure are carried through unchanged.
func Remap(m remap.FrameRemapper, t *Trace) *Trace {
	if t == nil {
		return nil
	}
	out := &Trace{Exception: t.Exception}

	var carry remap.Carry
	for _, e := range t.Entries {
		if !e.IsFrame {
			out.Entries = append(out.Entries, e)
			continue
		}
		var frames []remap.Frame
		frames, carry = m.RemapFrame(e.Frame, carry)
		for _, f := range frames {
			out.Entries = append(out.Entries, Entry{IsFrame: true, Frame: f})
		}
	}

	out.Cause = Remap(m, t.Cause)
	return out
}
