// Package stacktrace tokenizes the textual form of a Java throwable dump
// and drives the remap engine over its frames.
package stacktrace

import (
	"errors"
	"strings"

	"github.com/mabhi256/r8deobf/internal/remap"
)

var (
	errEmptyInt = errors.New("stacktrace: empty line number")
	errNotDigit = errors.New("stacktrace: non-digit in line number")
)

// Throwable is the first line of a Java Throwable.printStackTrace() dump.
type Throwable struct {
	Class      string
	Message    string
	HasMessage bool
}

func (t Throwable) String() string {
	if t.HasMessage {
		return t.Class + ": " + t.Message
	}
	return t.Class
}

// Entry is one content line below the throwable line: either a
// successfully parsed frame, or a raw line preserved verbatim (an
// unparsed "at ..." line, a "... N more" elision, blank lines, etc).
type Entry struct {
	IsFrame bool
	Frame   remap.Frame
	Raw     string
}

// Trace is a full parsed Java stack trace, with causes linked recursively.
type Trace struct {
	Exception *Throwable
	Entries   []Entry
	Cause     *Trace
}

func (t *Trace) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Trace) writeTo(b *strings.Builder) {
	if t.Exception != nil {
		b.WriteString(t.Exception.String())
		b.WriteByte('\n')
	}
	for _, e := range t.Entries {
		if e.IsFrame {
			b.WriteString("    ")
			b.WriteString(formatFrame(e.Frame))
		} else {
			b.WriteString(e.Raw)
		}
		b.WriteByte('\n')
	}
	if t.Cause != nil {
		b.WriteString("Caused by: ")
		t.Cause.writeTo(b)
	}
}

func formatFrame(f remap.Frame) string {
	file := "<unknown>"
	if f.HasFile {
		file = f.File
	}
	return "at " + f.Class + "." + f.Method + "(" + file + ":" + itoa(f.Line) + ")"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Parse tokenizes a full Java stack trace. It returns (nil, false) only
// when neither an exception line nor any entries were found at the
// top level.
func Parse(input string) (*Trace, bool) {
	lines := splitLines(input)

	idx := 0
	trace := &Trace{}
	if len(lines) > 0 {
		if th, ok := parseThrowable(lines[0]); ok {
			trace.Exception = &th
			idx = 1
		}
	}

	current := trace
	for ; idx < len(lines); idx++ {
		line := lines[idx]
		if frame, ok := parseFrame(line); ok {
			current.Entries = append(current.Entries, Entry{IsFrame: true, Frame: frame})
			continue
		}
		if rest, ok := strings.CutPrefix(line, "Caused by: "); ok {
			next := &Trace{}
			if th, ok := parseThrowable(rest); ok {
				next.Exception = &th
			}
			current.Cause = next
			current = next
			continue
		}
		current.Entries = append(current.Entries, Entry{Raw: line})
	}

	if trace.Exception == nil && len(trace.Entries) == 0 {
		return nil, false
	}
	return trace, true
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// parseThrowable parses "<class>[: <message>]"; class must not contain spaces.
func parseThrowable(line string) (Throwable, bool) {
	line = strings.TrimSpace(line)
	class, message, hasMessage := line, "", false
	if idx := strings.Index(line, ": "); idx >= 0 {
		class, message, hasMessage = line[:idx], line[idx+2:], true
	}
	if class == "" || strings.ContainsRune(class, ' ') {
		return Throwable{}, false
	}
	return Throwable{Class: class, Message: message, HasMessage: hasMessage}, true
}

// parseFrame parses a trimmed "at <class>.<method>(<file>:<line>)" line.
func parseFrame(line string) (remap.Frame, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "at ") || !strings.HasSuffix(line, ")") {
		return remap.Frame{}, false
	}
	body := line[3 : len(line)-1]

	parenIdx := strings.IndexByte(body, '(')
	if parenIdx < 0 {
		return remap.Frame{}, false
	}
	methodPart, locPart := body[:parenIdx], body[parenIdx+1:]

	dotIdx := strings.LastIndexByte(methodPart, '.')
	if dotIdx < 0 {
		return remap.Frame{}, false
	}
	class, method := methodPart[:dotIdx], methodPart[dotIdx+1:]

	colonIdx := strings.IndexByte(locPart, ':')
	if colonIdx < 0 {
		return remap.Frame{}, false
	}
	file, lineStr := locPart[:colonIdx], locPart[colonIdx+1:]

	line2, err := parseUint(lineStr)
	if err != nil {
		return remap.Frame{}, false
	}

	return remap.Frame{Class: class, Method: method, File: file, HasFile: true, Line: line2}, true
}

func parseUint(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errEmptyInt
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errNotDigit
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
