package cache

import (
	"encoding/binary"
	"sort"
)

// Cache is a parsed view over a binary cache blob. It borrows buf
// directly: buf must outlive the Cache and anything derived from it.
type Cache struct {
	buf           []byte
	numClasses    int
	classSection  []byte
	memberSection []byte
	stringSection []byte
}

// Parse validates and wraps a cache blob without decoding any class or
// member records; those are decoded lazily on lookup.
func Parse(buf []byte) (*Cache, error) {
	if len(buf) < headerSize {
		return nil, &Error{Kind: InvalidHeader}
	}
	gotMagic := binary.LittleEndian.Uint32(buf[0:4])
	if gotMagic == magicFlipped {
		return nil, &Error{Kind: WrongEndianness}
	}
	if gotMagic != magic {
		return nil, &Error{Kind: WrongFormat}
	}
	gotVersion := binary.LittleEndian.Uint32(buf[4:8])
	if gotVersion != version {
		return nil, &Error{Kind: WrongVersion}
	}
	numClasses := int(binary.LittleEndian.Uint32(buf[8:12]))
	stringBytes := int(binary.LittleEndian.Uint32(buf[12:16]))

	classStart := headerSize
	classEnd := classStart + align8(numClasses*classRecordSize)
	if classEnd > len(buf) || classEnd < classStart {
		return nil, &Error{Kind: InvalidClasses}
	}
	classSection := buf[classStart : classStart+numClasses*classRecordSize]

	stringStart := len(buf) - stringBytes
	if stringStart < classEnd {
		return nil, &Error{Kind: UnexpectedStringBytes, Expected: stringBytes, Found: len(buf) - classEnd}
	}
	// A table shorter than declared shifts stringStart back into the
	// member records: the section between them is then no longer whole
	// records, or the table no longer ends in its final NUL.
	if (stringStart-classEnd)%memberRecordSize != 0 || (stringBytes > 0 && buf[len(buf)-1] != 0) {
		return nil, &Error{Kind: UnexpectedStringBytes, Expected: stringBytes, Found: len(buf) - classEnd}
	}
	stringSection := buf[stringStart : stringStart+stringBytes]
	memberSection := buf[classEnd:stringStart]

	return &Cache{
		buf:           buf,
		numClasses:    numClasses,
		classSection:  classSection,
		memberSection: memberSection,
		stringSection: stringSection,
	}, nil
}

// NumClasses reports how many classes the cache's header advertises.
func (c *Cache) NumClasses() int { return c.numClasses }

func (c *Cache) classRecord(i int) (obfOff, origOff, fileOff, bodyOff uint32) {
	off := i * classRecordSize
	rec := c.classSection[off : off+classRecordSize]
	return binary.LittleEndian.Uint32(rec[0:4]),
		binary.LittleEndian.Uint32(rec[4:8]),
		binary.LittleEndian.Uint32(rec[8:12]),
		binary.LittleEndian.Uint32(rec[12:16])
}

// Class looks up a class by its obfuscated name via binary search over
// the sorted class table.
func (c *Cache) Class(obfuscated string) (*CachedClass, bool) {
	i := sort.Search(c.numClasses, func(i int) bool {
		obfOff, _, _, _ := c.classRecord(i)
		name, err := readString(c.stringSection, obfOff)
		if err != nil {
			return true
		}
		return name >= obfuscated
	})
	if i >= c.numClasses {
		return nil, false
	}
	obfOff, origOff, fileOff, bodyOff := c.classRecord(i)
	name, err := readString(c.stringSection, obfOff)
	if err != nil || name != obfuscated {
		return nil, false
	}
	original, err := readString(c.stringSection, origOff)
	if err != nil {
		return nil, false
	}

	bodyEnd := len(c.buf) - len(c.stringSection)
	if i+1 < c.numClasses {
		_, _, _, nextBody := c.classRecord(i + 1)
		bodyEnd = int(nextBody)
	}

	cls := &CachedClass{
		cache:         c,
		ObfuscatedName: name,
		OriginalName:  original,
		bodyStart:     int(bodyOff),
		bodyEnd:       bodyEnd,
	}
	if fileOff != 0 {
		sourceFile, err := readString(c.stringSection, fileOff)
		if err == nil {
			cls.SourceFile, cls.HasSourceFile = sourceFile, true
		}
	}
	return cls, true
}

// CachedClass is one class entry decoded from a Cache.
type CachedClass struct {
	cache *Cache

	ObfuscatedName string
	OriginalName   string
	SourceFile     string
	HasSourceFile  bool

	bodyStart, bodyEnd int
}

// CachedMember is one member record decoded from a class body.
type CachedMember struct {
	ObfuscatedMethod string
	OriginalClass    string
	IsForeign        bool
	OriginalMethod   string
	Arguments        string

	ObfStart, ObfEnd int

	OrigStart  int
	HasOrigEnd bool
	OrigEnd    int

	SourceFile    string
	HasSourceFile bool

	IsSynthesized bool
	IsOutline     bool
}

// Members decodes every member record in this class's body whose
// obfuscated method name matches obfuscatedMethod.
func (c *CachedClass) Members(obfuscatedMethod string) ([]CachedMember, error) {
	var out []CachedMember
	members, err := c.allMembers()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.ObfuscatedMethod == obfuscatedMethod {
			out = append(out, m)
		}
	}
	return out, nil
}

// allMembers decodes every member record in this class's body, in
// on-disk order.
func (c *CachedClass) allMembers() ([]CachedMember, error) {
	body := c.cache.memberSection
	lo, hi := c.bodyStart-headerBodyBase(c.cache), c.bodyEnd-headerBodyBase(c.cache)
	if lo < 0 || hi > len(body) || lo > hi || (hi-lo)%memberRecordSize != 0 {
		return nil, &Error{Kind: InvalidClasses}
	}

	var out []CachedMember
	for off := lo; off < hi; off += memberRecordSize {
		rec := body[off : off+memberRecordSize]
		obfMethodOff := binary.LittleEndian.Uint32(rec[0:4])
		obfStart := binary.LittleEndian.Uint32(rec[4:8])
		obfEnd := binary.LittleEndian.Uint32(rec[8:12])
		origClassOff := binary.LittleEndian.Uint32(rec[12:16])
		origFileOff := binary.LittleEndian.Uint32(rec[16:20])
		origMethodOff := binary.LittleEndian.Uint32(rec[20:24])
		origStart := binary.LittleEndian.Uint32(rec[24:28])
		origEnd := binary.LittleEndian.Uint32(rec[28:32])
		paramsOff := binary.LittleEndian.Uint32(rec[32:36])
		flags := binary.LittleEndian.Uint32(rec[36:40])

		obfMethod, err := readString(c.cache.stringSection, obfMethodOff)
		if err != nil {
			return nil, err
		}
		origMethod, err := readString(c.cache.stringSection, origMethodOff)
		if err != nil {
			return nil, err
		}
		params, err := readString(c.cache.stringSection, paramsOff)
		if err != nil {
			return nil, err
		}

		m := CachedMember{
			ObfuscatedMethod: obfMethod,
			OriginalMethod:   origMethod,
			Arguments:        params,
			ObfStart:         int(obfStart),
			ObfEnd:           int(obfEnd),
			OrigStart:        int(origStart),
			HasOrigEnd:       flags&flagInlineParent == 0,
			OrigEnd:          int(origEnd),
			IsSynthesized:    flags&flagSynthesized != 0,
			IsOutline:        flags&flagOutlineTarget != 0,
			OriginalClass:    c.OriginalName,
		}
		if origClassOff != 0 {
			origClass, err := readString(c.cache.stringSection, origClassOff)
			if err != nil {
				return nil, err
			}
			m.OriginalClass, m.IsForeign = origClass, true
		}
		if origFileOff != 0 {
			origFile, err := readString(c.cache.stringSection, origFileOff)
			if err == nil {
				m.SourceFile, m.HasSourceFile = origFile, true
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func headerBodyBase(c *Cache) int {
	return len(c.buf) - len(c.memberSection) - len(c.stringSection)
}
