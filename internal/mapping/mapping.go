package mapping

import "io"

// Mapping is a view over the raw bytes of a ProGuard/R8 mapping file. It
// owns no derived data: records are tokenized from this buffer on demand,
// and the strings they carry are copies of its text. Only a ParseError's
// Line still refers to the buffer itself.
type Mapping struct {
	source []byte
}

// New wraps a mapping file's raw bytes. The caller retains ownership of buf;
// Mapping never copies or mutates it.
func New(buf []byte) *Mapping {
	return &Mapping{source: buf}
}

// Source returns the backing bytes this Mapping was built from.
func (m *Mapping) Source() []byte { return m.source }

// RecordIter is the lazy, per-line tokenizer over a Mapping's bytes.
type RecordIter struct {
	remaining []byte
}

// Records returns a fresh iterator over this mapping's records.
func (m *Mapping) Records() *RecordIter {
	return &RecordIter{remaining: m.source}
}

// Next returns the next record, or io.EOF once the mapping is exhausted.
// A non-EOF, non-nil error means the current line failed to parse; the
// iterator has already advanced past it and can be called again.
func (it *RecordIter) Next() (Record, error) {
	for {
		line, rest := splitLine(it.remaining)
		it.remaining = rest
		if len(line) != 0 {
			rec, err := parseLine(line)
			if err != nil {
				return nil, err
			}
			return rec, nil
		}
		if len(rest) == 0 {
			return nil, io.EOF
		}
	}
}

// MappingSummary reports coarse statistics gathered from a mapping's
// headers and record counts.
type MappingSummary struct {
	Compiler        string
	HasCompiler     bool
	CompilerVersion string
	HasCompilerVersion bool
	MinAPI          int
	HasMinAPI       bool
	ClassCount      int
	MethodCount     int
}

// Summary walks the whole mapping once, collecting header and record
// counts. Malformed lines are skipped, same as everywhere else in this
// package.
func (m *Mapping) Summary() MappingSummary {
	var s MappingSummary
	it := m.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		switch r := rec.(type) {
		case HeaderRecord:
			switch r.Key {
			case "compiler":
				s.Compiler, s.HasCompiler = r.Value, r.HasValue
			case "compiler_version":
				s.CompilerVersion, s.HasCompilerVersion = r.Value, r.HasValue
			case "min_api":
				if n, ok := atoiOK(r.Value); ok && r.HasValue {
					s.MinAPI, s.HasMinAPI = n, true
				}
			}
		case ClassRecord:
			s.ClassCount++
		case MethodRecord:
			s.MethodCount++
		}
	}
	return s
}

func atoiOK(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// IsValid is a cheap sanity check: it looks for a Class record followed by
// a Field or Method record within the first 50 parsed records, without
// parsing the whole file.
func (m *Mapping) IsValid() bool {
	it := m.Records()
	hasClass := false
	for i := 0; i < 50; i++ {
		rec, err := it.Next()
		if err == io.EOF {
			return false
		}
		if err != nil {
			continue
		}
		switch rec.(type) {
		case ClassRecord:
			hasClass = true
		case FieldRecord, MethodRecord:
			if hasClass {
				return true
			}
		}
	}
	return false
}

// HasLineInfo reports whether any Method record in the mapping carries a
// line range.
func (m *Mapping) HasLineInfo() bool {
	it := m.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return false
		}
		if err != nil {
			continue
		}
		if method, ok := rec.(MethodRecord); ok && method.Range != nil {
			return true
		}
	}
}
