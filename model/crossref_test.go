package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reforge-mod/sdkgen/parser"
)

func TestCrossReferenceFillsMissingMetadata(t *testing.T) {
	// The primary dump lost the return type and access of Foo::Bar; the
	// secondary build still has them.
	primary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", Parameters: "void", Address: "00401000"},
	}, nil)
	secondary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", ReturnType: "int", Access: "protected", Parameters: "void", Address: "00501000"},
	}, nil)

	CrossReference(context.Background(), primary, secondary)

	id, ok := primary.Lookup("Foo")
	require.True(t, ok)
	fn := primary.Class(id).Functions[0]
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, BaseInt, fn.ReturnType.Base)
	assert.Equal(t, AccessProtected, fn.Access)
	// The primary's own address is untouched.
	assert.Equal(t, uint32(0x00401000), fn.Address)
}

func TestCrossReferenceNeverOverwrites(t *testing.T) {
	primary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", ReturnType: "float", Access: "public", Parameters: "void", Address: "00401000"},
	}, nil)
	secondary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", ReturnType: "int", Access: "private", Parameters: "void", Address: "00501000"},
	}, nil)

	CrossReference(context.Background(), primary, secondary)

	id, _ := primary.Lookup("Foo")
	fn := primary.Class(id).Functions[0]
	assert.Equal(t, BaseFloat, fn.ReturnType.Base)
	assert.Equal(t, AccessPublic, fn.Access)
}

func TestCrossReferenceCreatesNothing(t *testing.T) {
	primary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", Parameters: "void", Address: "00401000"},
	}, nil)
	secondary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Other", ClassName: "Foo", Parameters: "void", Address: "00501000"},
		{FunctionName: "Fn", ClassName: "OnlyInSecondary", Parameters: "void", Address: "00502000"},
	}, nil)

	CrossReference(context.Background(), primary, secondary)

	_, ok := primary.Lookup("OnlyInSecondary")
	assert.False(t, ok)
	id, _ := primary.Lookup("Foo")
	// Bar plus the synthesized constructor only; Other was not copied over.
	assert.Len(t, primary.Class(id).Functions, 2)
}

func TestCrossReferenceOverloadsMatchByName(t *testing.T) {
	// Both overloads of Bar pair with every same-named donor; the first
	// donor carrying a value wins. Documented limitation.
	primary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", Parameters: "int", Address: "00401000"},
		{FunctionName: "Bar", ClassName: "Foo", Parameters: "float", Address: "00401010"},
	}, nil)
	secondary := BuildModel(context.Background(), []parser.SymbolRecord{
		{FunctionName: "Bar", ClassName: "Foo", ReturnType: "int", Parameters: "int", Address: "00501000"},
	}, nil)

	CrossReference(context.Background(), primary, secondary)

	id, _ := primary.Lookup("Foo")
	cls := primary.Class(id)
	require.NotNil(t, cls.Functions[0].ReturnType)
	require.NotNil(t, cls.Functions[1].ReturnType, "the float overload received the int donor's metadata too")
	assert.Equal(t, BaseInt, cls.Functions[1].ReturnType.Base)
}
