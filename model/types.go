// Package model builds the semantic class/function model from lexed symbol
// records and computes per-class header/source dependency sets.
package model

import (
	"sort"
)

// GlobalFunctionsName is the sentinel class that collects exported functions
// belonging to no class. It never takes part in struct merging or dependency
// resolution.
const GlobalFunctionsName = "GlobalFunctions"

// VariadicMarker is the spelling the dump tool uses for a trailing variadic
// parameter. It never produces a dependency.
const VariadicMarker = "..."

// BaseType enumerates the built-in types the dump tool can spell.
type BaseType int

const (
	BaseVoid BaseType = iota
	BaseBool
	BaseChar
	BaseUChar
	BaseShort
	BaseUShort
	BaseInt
	BaseUInt
	BaseLong
	BaseULong
	BaseLongLong
	BaseULongLong
	BaseFloat
	BaseDouble
)

var baseSpellings = map[BaseType]string{
	BaseVoid:      "void",
	BaseBool:      "bool",
	BaseChar:      "char",
	BaseUChar:     "unsigned char",
	BaseShort:     "short",
	BaseUShort:    "unsigned short",
	BaseInt:       "int",
	BaseUInt:      "unsigned int",
	BaseLong:      "long",
	BaseULong:     "unsigned long",
	BaseLongLong:  "__int64",
	BaseULongLong: "unsigned __int64",
	BaseFloat:     "float",
	BaseDouble:    "double",
}

// Spelling returns the canonical C++ spelling for the base type.
func (b BaseType) Spelling() string {
	return baseSpellings[b]
}

// AccessLevel is a member's declared access. The zero value means the dump
// carried no access information; cross-referencing may fill it in later.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return ""
	}
}

// CallingConvention is the convention declared in the dump. The zero value
// means none was recorded.
type CallingConvention int

const (
	ConvNone CallingConvention = iota
	ConvCdecl
	ConvThiscall
	ConvStdcall
	ConvFastcall
)

// Keyword returns the MSVC spelling of the convention, or "" for ConvNone.
func (c CallingConvention) Keyword() string {
	switch c {
	case ConvCdecl:
		return "__cdecl"
	case ConvThiscall:
		return "__thiscall"
	case ConvStdcall:
		return "__stdcall"
	case ConvFastcall:
		return "__fastcall"
	default:
		return ""
	}
}

// CppType is a normalized type spelling: a built-in base type, a pointer to a
// named type, or a named type. Named types are keyed and ordered by Name.
type CppType struct {
	Raw       string // spelling as it appeared in the dump
	IsBase    bool
	Base      BaseType // valid only when IsBase
	IsPointer bool
	Name      string // normalized type name, empty for base types
}

// Spelling renders the canonical C++ spelling, pointer suffix included.
func (t CppType) Spelling() string {
	s := t.Name
	if t.IsBase {
		s = t.Base.Spelling()
	}
	if t.IsPointer {
		return s + " *"
	}
	return s
}

// IsVoid reports whether the type is the non-pointer void base type.
func (t CppType) IsVoid() bool {
	return t.IsBase && t.Base == BaseVoid && !t.IsPointer
}

// ParsedFunction is one exported function from the dump. Built once by the
// model builder; only cross-referencing mutates it afterwards, and only to
// fill an absent return type or access level.
type ParsedFunction struct {
	MangledName string // name as dumped, operators and templates intact
	Name        string // identifier-safe name, operators spelled out

	ReturnType *CppType // nil when the dump carried none
	Parameters []CppType
	Access     AccessLevel
	Convention CallingConvention

	IsConstructor bool
	IsDestructor  bool
	IsVirtual     bool
	IsConst       bool
	IsStatic      bool

	// Address of the compiled code in the target binary. Zero means no
	// address is known (synthesized default constructors only).
	Address uint32

	Owner ClassID
}

// HasNoParameters reports whether the parameter list is the dump tool's
// "(void)" convention for an empty list.
func (f *ParsedFunction) HasNoParameters() bool {
	return len(f.Parameters) == 1 && f.Parameters[0].IsVoid()
}

// Member is one named data slot of a class layout.
type Member struct {
	Name string
	Type CppType
}

// ParsedClass is one class of the model. Functions and members are owned and
// keep discovery order; inheritance and dependency edges are arena ids into
// the shared Model.
type ParsedClass struct {
	Name      string // possibly template-mangled
	Functions []*ParsedFunction
	Bases     []ClassID
	Members   []Member

	// Filled by ResolveDependencies, ordered by target name.
	HeaderDeps  []ClassID
	SourceDeps  []ClassID
	UnknownDeps []string
}

// IsGlobalBucket reports whether this is the shared free-standing bucket.
func (c *ParsedClass) IsGlobalBucket() bool {
	return c.Name == GlobalFunctionsName
}

// BaseName is the class name stripped of any template-mangling suffix; it is
// the name constructors are matched against first.
func (c *ParsedClass) BaseName() string {
	if i := indexOfMangleMarker(c.Name); i > 0 {
		return c.Name[:i]
	}
	return c.Name
}

// ParsedStruct is a transient struct-layout record, consumed by MergeStructs.
// Base names are plain strings until the whole collection exists.
type ParsedStruct struct {
	Name      string
	Members   []Member
	BaseNames []string
}

// ClassID is a stable identifier into a Model's class arena.
type ClassID int

// InvalidClass is the owner of nothing.
const InvalidClass ClassID = -1

// Model is the arena owning every class. Classes are created once per
// distinct de-templated name on first sighting and never destroyed, so ids
// stay valid for the lifetime of the model.
type Model struct {
	classes []*ParsedClass
	byName  map[string]ClassID
}

func NewModel() *Model {
	return &Model{byName: make(map[string]ClassID)}
}

// Class resolves an id. Ids come only from this model, so resolution cannot
// fail.
func (m *Model) Class(id ClassID) *ParsedClass {
	return m.classes[id]
}

// Lookup finds a class by exact name.
func (m *Model) Lookup(name string) (ClassID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// FindOrCreate returns the class with the given name, creating it on first
// sighting.
func (m *Model) FindOrCreate(name string) ClassID {
	if id, ok := m.byName[name]; ok {
		return id
	}
	id := ClassID(len(m.classes))
	m.classes = append(m.classes, &ParsedClass{Name: name})
	m.byName[name] = id
	return id
}

// Len is the number of classes, the sentinel bucket included if present.
func (m *Model) Len() int {
	return len(m.classes)
}

// SortedIDs returns every class id ordered by class name (ordinal compare),
// the deterministic order every pass and the emitter iterate in.
func (m *Model) SortedIDs() []ClassID {
	ids := make([]ClassID, len(m.classes))
	for i := range m.classes {
		ids[i] = ClassID(i)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.classes[ids[i]].Name < m.classes[ids[j]].Name
	})
	return ids
}
