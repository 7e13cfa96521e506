package model

import (
	"strings"
)

// namedBaseTypes keys every spelling the dump tool uses for a built-in type.
// The mapping is total over the closed BaseType enumeration; anything not in
// here is a named type.
var namedBaseTypes = map[string]BaseType{
	"void":               BaseVoid,
	"bool":               BaseBool,
	"char":               BaseChar,
	"signed char":        BaseChar,
	"unsigned char":      BaseUChar,
	"short":              BaseShort,
	"unsigned short":     BaseUShort,
	"int":                BaseInt,
	"signed int":         BaseInt,
	"unsigned int":       BaseUInt,
	"unsigned":           BaseUInt,
	"long":               BaseLong,
	"unsigned long":      BaseULong,
	"long long":          BaseLongLong,
	"__int64":            BaseLongLong,
	"unsigned long long": BaseULongLong,
	"unsigned __int64":   BaseULongLong,
	"float":              BaseFloat,
	"double":             BaseDouble,
}

// NormalizeType canonicalizes a raw type spelling into a base type, a pointer
// to a named type, or a named type. Trailing array syntax decays to a
// pointer; "enum X" collapses to plain int, since enums are not modeled as
// distinct types. Template argument lists in named types are mangled so the
// name keys against class names.
func NormalizeType(raw string) CppType {
	t := CppType{Raw: raw}

	s := strings.TrimSpace(raw)

	// Arrays decay: "float[]" and "float []" are pointers to float.
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		t.IsPointer = true
	}

	// Enums are plain integers to the generated code.
	if s == "enum" || strings.HasPrefix(s, "enum ") {
		t.IsBase = true
		t.Base = BaseInt
		return t
	}

	// References weigh the same as pointers for dependency purposes: a
	// forward declaration satisfies both.
	for strings.HasSuffix(s, "*") || strings.HasSuffix(s, "&") {
		s = strings.TrimSpace(s[:len(s)-1])
		t.IsPointer = true
	}

	if base, ok := namedBaseTypes[s]; ok {
		t.IsBase = true
		t.Base = base
		return t
	}

	t.Name = MangleTemplates(s)
	return t
}
