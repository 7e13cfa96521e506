// Package parser lexes the textual symbol and struct-layout dumps produced by
// the external analysis tool into flat, ordered records. It knows nothing
// about classes or dependencies; the model package consumes its output.
package parser

// SymbolRecord is one exported function, lexed but not yet interpreted. All
// fields are raw spellings from the dump line.
type SymbolRecord struct {
	FunctionName string
	ClassName    string // "" for class-less symbols
	Access       string // "public", "protected", "private" or ""
	IsVirtual    bool
	IsConst      bool
	IsStatic     bool
	ReturnType   string // "" when the dump carried none
	Parameters   string // comma-separated raw spellings, "" or "void" = none
	Convention   string // "cdecl", "thiscall", "stdcall", "fastcall" or ""
	Address      string // hex, no prefix
}

// StructMember is one named slot of a struct layout.
type StructMember struct {
	Name string
	Type string
}

// StructRecord is one struct layout from the layout dump. Base names stay
// strings; the model resolves them once every class is known.
type StructRecord struct {
	Name      string
	Members   []StructMember
	BaseNames []string
}
