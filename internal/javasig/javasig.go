// Package javasig turns JVM method descriptors like
// "(Ljava/lang/String;I)V" into human-readable Java signatures, remapping
// any embedded class references through a remap.ClassRemapper along the way.
package javasig

import (
	"strings"

	"github.com/mabhi256/r8deobf/internal/remap"
)

// Signature is a deobfuscated method signature: its parameter types in
// declaration order and its return type.
type Signature struct {
	Parameters []string
	Return     string
}

func javaBaseType(token byte) (string, bool) {
	switch token {
	case 'Z':
		return "boolean", true
	case 'B':
		return "byte", true
	case 'C':
		return "char", true
	case 'S':
		return "short", true
	case 'I':
		return "int", true
	case 'J':
		return "long", true
	case 'F':
		return "float", true
	case 'D':
		return "double", true
	case 'V':
		return "void", true
	default:
		return "", false
	}
}

// byteCodeTypeToJavaType resolves a single bytecode type descriptor
// ("[I", "Lorg/a/b/C;", "I", ...) to its Java spelling, remapping a
// class reference through m; a name m does not know is kept as written.
func byteCodeTypeToJavaType(byteCodeType string, m remap.ClassRemapper) (string, bool) {
	var suffix strings.Builder
	for i := 0; i < len(byteCodeType); i++ {
		token := byteCodeType[i]
		switch {
		case token == 'L':
			if byteCodeType[len(byteCodeType)-1] != ';' {
				return "", false
			}
			obfuscated := strings.ReplaceAll(byteCodeType[i+1:len(byteCodeType)-1], "/", ".")
			if mapped, ok := m.RemapClass(obfuscated); ok {
				return mapped + suffix.String(), true
			}
			return obfuscated + suffix.String(), true
		case token == '[':
			suffix.WriteString("[]")
		default:
			if ty, ok := javaBaseType(token); ok {
				return ty + suffix.String(), true
			}
		}
	}
	return "", false
}

// parseObfuscatedBytecodeSignature splits a descriptor into its raw
// parameter-type tokens and raw return-type token, without resolving
// any class reference yet.
func parseObfuscatedBytecodeSignature(signature string) ([]string, string, bool) {
	if !strings.HasPrefix(signature, "(") {
		return nil, "", false
	}
	signature = signature[1:]

	idx := strings.LastIndexByte(signature, ')')
	if idx < 0 {
		return nil, "", false
	}
	parameterTypes, returnType := signature[:idx], signature[idx+1:]
	if returnType == "" {
		return nil, "", false
	}

	var types []string
	var tmp strings.Builder

	for i := 0; i < len(parameterTypes); i++ {
		token := parameterTypes[i]
		switch {
		case token == 'L':
			tmp.WriteByte(token)
			closed := false
			for i+1 < len(parameterTypes) {
				i++
				c := parameterTypes[i]
				tmp.WriteByte(c)
				if c == ';' {
					closed = true
					break
				}
			}
			if tmp.Len() == 0 || !closed {
				return nil, "", false
			}
			types = append(types, tmp.String())
			tmp.Reset()
		case token == '[':
			tmp.WriteByte('[')
		default:
			if _, ok := javaBaseType(token); ok {
				if tmp.Len() > 0 {
					tmp.WriteByte(token)
					types = append(types, tmp.String())
					tmp.Reset()
				} else {
					types = append(types, string(token))
				}
			} else {
				tmp.Reset()
			}
		}
	}
	return types, returnType, true
}

// Deobfuscate parses an obfuscated bytecode method descriptor and
// resolves every embedded class reference through m.
func Deobfuscate(signature string, m remap.ClassRemapper) (Signature, bool) {
	paramTypes, returnType, ok := parseObfuscatedBytecodeSignature(signature)
	if !ok {
		return Signature{}, false
	}

	var params []string
	for _, p := range paramTypes {
		if p == "" {
			continue
		}
		if t, ok := byteCodeTypeToJavaType(p, m); ok {
			params = append(params, t)
		}
	}

	ret, ok := byteCodeTypeToJavaType(returnType, m)
	if !ok {
		return Signature{}, false
	}

	return Signature{Parameters: params, Return: ret}, true
}

// Format renders sig as "(param, param): returnType", omitting the
// return type entirely when it is void.
func Format(sig Signature) string {
	s := "(" + strings.Join(sig.Parameters, ", ") + ")"
	if sig.Return != "" && sig.Return != "void" {
		s += ": " + sig.Return
	}
	return s
}

// FormatSignature is the one-shot convenience combining Deobfuscate and
// Format, used by the CLI's --pretty-signatures flag.
func FormatSignature(obfuscated string, m remap.ClassRemapper) (string, bool) {
	sig, ok := Deobfuscate(obfuscated, m)
	if !ok {
		return "", false
	}
	return Format(sig), true
}
