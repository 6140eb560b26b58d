package cache

import "github.com/mabhi256/r8deobf/internal/remap"

// RemapClass resolves an obfuscated class name directly from the cache,
// without decoding any member records.
func (c *Cache) RemapClass(obfuscated string) (string, bool) {
	cls, ok := c.Class(obfuscated)
	if !ok {
		return "", false
	}
	return cls.OriginalName, true
}

// RemapMethod mirrors remap.Mapper.RemapMethod against cached records.
func (c *Cache) RemapMethod(obfuscatedClass, obfuscatedMethod string) (originalClass, originalMethod string, ok bool) {
	cls, ok := c.Class(obfuscatedClass)
	if !ok {
		return "", "", false
	}
	members, err := cls.Members(obfuscatedMethod)
	if err != nil || len(members) == 0 {
		return "", "", false
	}
	originalClass, originalMethod = members[0].OriginalClass, members[0].OriginalMethod
	for _, m := range members[1:] {
		if m.OriginalClass != originalClass || m.OriginalMethod != originalMethod {
			return "", "", false
		}
	}
	return originalClass, originalMethod, true
}

// RemapFrame mirrors remap.Mapper.RemapFrame against cached records,
// decoding only the body of the class the frame names. Outline-callsite
// tables are not stored in the cache, so the returned Carry is always
// empty; an incoming carry is still applied to outline targets.
func (c *Cache) RemapFrame(frame remap.Frame, carry remap.Carry) ([]remap.Frame, remap.Carry) {
	var nextCarry remap.Carry

	cls, ok := c.Class(frame.Class)
	if !ok {
		return nil, nextCarry
	}
	members, err := cls.Members(frame.Method)
	if err != nil || len(members) == 0 {
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

	var out []remap.Frame
	for _, mem := range members {
		if mem.ObfEnd > 0 {
			if effectiveLine < mem.ObfStart || effectiveLine > mem.ObfEnd {
				continue
			}
		}

		line := mem.OrigStart
		if mem.HasOrigEnd {
			line = mem.OrigStart + (effectiveLine - mem.ObfStart)
		}

		outClass := cls.OriginalName
		var file string
		var hasFile bool
		if mem.IsForeign {
			outClass = mem.OriginalClass
		} else if mem.HasSourceFile {
			file, hasFile = mem.SourceFile, true
		} else if frame.HasFile {
			file, hasFile = frame.File, true
		}

		out = append(out, remap.Frame{
			Class:   outClass,
			Method:  mem.OriginalMethod,
			Line:    line,
			File:    file,
			HasFile: hasFile,
		})
	}
	return out, nextCarry
}
