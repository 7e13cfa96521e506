package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexLineFullSignature(t *testing.T) {
	rec, ok := LexLine("public: virtual int __thiscall zCVob::GetClassDef(void) const @ 0052A1B0")
	require.True(t, ok)
	assert.Equal(t, "GetClassDef", rec.FunctionName)
	assert.Equal(t, "zCVob", rec.ClassName)
	assert.Equal(t, "public", rec.Access)
	assert.True(t, rec.IsVirtual)
	assert.True(t, rec.IsConst)
	assert.False(t, rec.IsStatic)
	assert.Equal(t, "int", rec.ReturnType)
	assert.Equal(t, "void", rec.Parameters)
	assert.Equal(t, "thiscall", rec.Convention)
	assert.Equal(t, "0052A1B0", rec.Address)
}

func TestLexLineStaticFunction(t *testing.T) {
	rec, ok := LexLine("private: static void __cdecl zCVob::CleanupStatics(int, char *) @ 00401000")
	require.True(t, ok)
	assert.True(t, rec.IsStatic)
	assert.False(t, rec.IsVirtual)
	assert.Equal(t, "void", rec.ReturnType)
	assert.Equal(t, "int, char *", rec.Parameters)
	assert.Equal(t, "cdecl", rec.Convention)
}

func TestLexLineConstructor(t *testing.T) {
	rec, ok := LexLine("public: __thiscall zCVob::zCVob(void) @ 00508A10")
	require.True(t, ok)
	assert.Equal(t, "zCVob", rec.FunctionName)
	assert.Equal(t, "zCVob", rec.ClassName)
	assert.Empty(t, rec.ReturnType)
}

func TestLexLineDestructor(t *testing.T) {
	rec, ok := LexLine("public: virtual __thiscall zCVob::~zCVob(void) @ 00508B00")
	require.True(t, ok)
	assert.Equal(t, "~zCVob", rec.FunctionName)
	assert.Equal(t, "zCVob", rec.ClassName)
	assert.True(t, rec.IsVirtual)
}

func TestLexLineOperators(t *testing.T) {
	rec, ok := LexLine("public: bool __thiscall zVEC3::operator<(zVEC3 &) @ 00402000")
	require.True(t, ok)
	assert.Equal(t, "operator<", rec.FunctionName)
	assert.Equal(t, "zVEC3", rec.ClassName)
	assert.Equal(t, "bool", rec.ReturnType)

	rec, ok = LexLine("public: float & __thiscall zVEC3::operator[](int) @ 00402010")
	require.True(t, ok)
	assert.Equal(t, "operator[]", rec.FunctionName)
	assert.Equal(t, "float &", rec.ReturnType)

	rec, ok = LexLine("public: static void * __cdecl zCVob::operator new(unsigned int) @ 00403000")
	require.True(t, ok)
	assert.Equal(t, "operator new", rec.FunctionName)
	assert.Equal(t, "zCVob", rec.ClassName)
	assert.Equal(t, "void *", rec.ReturnType)
	assert.True(t, rec.IsStatic)
}

func TestLexLineFreeStanding(t *testing.T) {
	rec, ok := LexLine("void __cdecl CreateEngine(void) @ 00404000")
	require.True(t, ok)
	assert.Equal(t, "CreateEngine", rec.FunctionName)
	assert.Empty(t, rec.ClassName)
}

func TestLexLineTemplatedClass(t *testing.T) {
	rec, ok := LexLine("public: int __thiscall zList<zCVob *>::GetSize(void) @ 00405000")
	require.True(t, ok)
	assert.Equal(t, "GetSize", rec.FunctionName)
	assert.Equal(t, "zList<zCVob *>", rec.ClassName)
}

func TestLexLineRejectsGarbage(t *testing.T) {
	for _, line := range []string{
		"",
		"# a comment",
		"// another comment",
		"not a symbol line",
		"missing address __cdecl Fn(void)",
		"bad address __cdecl Fn(void) @ XYZ",
	} {
		_, ok := LexLine(line)
		assert.False(t, ok, "line %q must not lex", line)
	}
}

func TestLexPreservesSourceOrder(t *testing.T) {
	// Enough lines to spread over every worker.
	var sb strings.Builder
	sb.WriteString("# symbol dump\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "void __cdecl Fn%04d(void) @ %08X\n", i, 0x00400000+i*0x10)
	}

	records, err := Lex(context.Background(), strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, records, 500)
	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("Fn%04d", i), rec.FunctionName)
	}
}

func TestLexSkipsUnparseableLines(t *testing.T) {
	dump := strings.Join([]string{
		"void __cdecl First(void) @ 00401000",
		"garbage in the middle",
		"void __cdecl Second(void) @ 00401010",
	}, "\n")

	records, err := Lex(context.Background(), strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "First", records[0].FunctionName)
	assert.Equal(t, "Second", records[1].FunctionName)
}
