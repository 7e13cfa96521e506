package model

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/reforge-mod/sdkgen/parser"
)

// BuildModel groups symbol records into classes. Records sharing a
// de-templated class name land in one class, first-seen order preserved.
// Class-less records are attributed to the shared free-standing bucket when
// their name contains one of the whitelist substrings, and discarded
// otherwise. Every class is guaranteed a default constructor: one is
// synthesized (no address, no access) when the dump exported none.
func BuildModel(ctx context.Context, records []parser.SymbolRecord, whitelist []string) *Model {
	m := NewModel()

	for i := range records {
		rec := &records[i]

		className := rec.ClassName
		if className == "" {
			if !matchesWhitelist(rec.FunctionName, whitelist) {
				slog.DebugContext(ctx, "discarding class-less symbol", "function", rec.FunctionName)
				continue
			}
			className = GlobalFunctionsName
		} else {
			className = MangleTemplates(className)
		}

		id := m.FindOrCreate(className)
		fn, ok := buildFunction(ctx, rec, id, m.Class(id))
		if !ok {
			continue
		}
		cls := m.Class(id)
		cls.Functions = append(cls.Functions, fn)
	}

	for _, id := range m.SortedIDs() {
		cls := m.Class(id)
		if cls.IsGlobalBucket() || hasDefaultConstructor(cls) {
			continue
		}
		cls.Functions = append(cls.Functions, synthesizeDefaultConstructor(cls, id))
		slog.DebugContext(ctx, "synthesized default constructor", "class", cls.Name)
	}

	return m
}

func matchesWhitelist(name string, whitelist []string) bool {
	for _, fragment := range whitelist {
		if fragment != "" && strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

func buildFunction(ctx context.Context, rec *parser.SymbolRecord, owner ClassID, cls *ParsedClass) (*ParsedFunction, bool) {
	fn := &ParsedFunction{
		MangledName: rec.FunctionName,
		Name:        FriendlyName(rec.FunctionName),
		Access:      accessFromRecord(rec.Access),
		Convention:  conventionFromRecord(rec.Convention),
		IsVirtual:   rec.IsVirtual,
		IsConst:     rec.IsConst,
		IsStatic:    rec.IsStatic,
		Owner:       owner,
	}

	if rec.Address != "" {
		addr, err := strconv.ParseUint(strings.TrimPrefix(rec.Address, "0x"), 16, 32)
		if err != nil {
			// Addresses are modeled as 32-bit values; anything else is
			// outside the supported target format.
			slog.WarnContext(ctx, "skipping symbol with unusable address",
				"function", rec.FunctionName, "address", rec.Address, "error", err)
			return nil, false
		}
		fn.Address = uint32(addr)
	}

	fn.Parameters = normalizeParameters(rec.Parameters)
	if rec.ReturnType != "" {
		ret := NormalizeType(rec.ReturnType)
		fn.ReturnType = &ret
	}

	if !cls.IsGlobalBucket() {
		classifyStructor(fn, cls)
	}

	return fn, true
}

// normalizeParameters splits the comma-separated raw spellings, commas inside
// template argument lists excluded, and normalizes each. An empty list is
// canonicalized to the lexer's single-void convention.
func normalizeParameters(raw string) []CppType {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "void" {
		return []CppType{{Raw: "void", IsBase: true, Base: BaseVoid}}
	}

	var params []CppType
	depth := 0
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i < len(raw) {
			switch raw[i] {
			case '<':
				depth++
				continue
			case '>':
				depth--
				continue
			case ',':
				if depth != 0 {
					continue
				}
			default:
				continue
			}
		}
		if spelling := strings.TrimSpace(raw[start:i]); spelling != "" {
			if spelling == VariadicMarker {
				params = append(params, CppType{Raw: spelling, Name: VariadicMarker})
			} else {
				params = append(params, NormalizeType(spelling))
			}
		}
		start = i + 1
	}
	return params
}

// classifyStructor sets the constructor/destructor flags. Constructors match
// the owner's base name (template-mangling suffix stripped) first, the full
// class name second; destructors the same with a '~' prefix. Both drop any
// return type the dump attached, the flags never co-occur with one.
func classifyStructor(fn *ParsedFunction, cls *ParsedClass) {
	name := fn.Name
	base := cls.BaseName()

	switch name {
	case base, cls.Name:
		fn.IsConstructor = true
	case "~" + base, "~" + cls.Name:
		fn.IsDestructor = true
	default:
		return
	}
	fn.ReturnType = nil
}

func hasDefaultConstructor(cls *ParsedClass) bool {
	for _, fn := range cls.Functions {
		if fn.IsConstructor && fn.HasNoParameters() {
			return true
		}
	}
	return false
}

func synthesizeDefaultConstructor(cls *ParsedClass, id ClassID) *ParsedFunction {
	return &ParsedFunction{
		MangledName:   cls.BaseName(),
		Name:          cls.BaseName(),
		Parameters:    []CppType{{Raw: "void", IsBase: true, Base: BaseVoid}},
		IsConstructor: true,
		Owner:         id,
	}
}

func accessFromRecord(s string) AccessLevel {
	switch s {
	case "public":
		return AccessPublic
	case "protected":
		return AccessProtected
	case "private":
		return AccessPrivate
	default:
		return AccessNone
	}
}

func conventionFromRecord(s string) CallingConvention {
	switch s {
	case "cdecl":
		return ConvCdecl
	case "thiscall":
		return ConvThiscall
	case "stdcall":
		return ConvStdcall
	case "fastcall":
		return ConvFastcall
	default:
		return ConvNone
	}
}
