package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTypeBaseTypes(t *testing.T) {
	tests := []struct {
		in   string
		base BaseType
	}{
		{"void", BaseVoid},
		{"bool", BaseBool},
		{"char", BaseChar},
		{"unsigned char", BaseUChar},
		{"int", BaseInt},
		{"unsigned int", BaseUInt},
		{"unsigned", BaseUInt},
		{"__int64", BaseLongLong},
		{"unsigned __int64", BaseULongLong},
		{"float", BaseFloat},
		{"double", BaseDouble},
	}
	for _, tt := range tests {
		got := NormalizeType(tt.in)
		assert.True(t, got.IsBase, "%q should be a base type", tt.in)
		assert.Equal(t, tt.base, got.Base, "%q", tt.in)
		assert.False(t, got.IsPointer)
	}
}

func TestNormalizeTypePointers(t *testing.T) {
	got := NormalizeType("zCVob *")
	assert.False(t, got.IsBase)
	assert.True(t, got.IsPointer)
	assert.Equal(t, "zCVob", got.Name)
	assert.Equal(t, "zCVob *", got.Spelling())

	got = NormalizeType("zCVob*")
	assert.True(t, got.IsPointer)
	assert.Equal(t, "zCVob", got.Name)

	// Pointer to a built-in stays a base type: pointers to base types never
	// become dependencies.
	got = NormalizeType("char *")
	assert.True(t, got.IsBase)
	assert.Equal(t, BaseChar, got.Base)
	assert.True(t, got.IsPointer)
}

func TestNormalizeTypeArraysDecay(t *testing.T) {
	got := NormalizeType("float[]")
	assert.True(t, got.IsBase)
	assert.Equal(t, BaseFloat, got.Base)
	assert.True(t, got.IsPointer)

	got = NormalizeType("zVEC3 []")
	assert.True(t, got.IsPointer)
	assert.Equal(t, "zVEC3", got.Name)
}

func TestNormalizeTypeEnumsCollapse(t *testing.T) {
	got := NormalizeType("enum zTCamMode")
	assert.True(t, got.IsBase)
	assert.Equal(t, BaseInt, got.Base)
	assert.False(t, got.IsPointer)
}

func TestNormalizeTypeManglesTemplates(t *testing.T) {
	got := NormalizeType("zList<zCVob *>")
	assert.False(t, got.IsBase)
	assert.Equal(t, "zListTemplatedzCVobPtr", got.Name)

	got = NormalizeType("zList<int> *")
	assert.True(t, got.IsPointer)
	assert.Equal(t, "zListTemplatedint", got.Name)
}

func TestNormalizeTypeReferences(t *testing.T) {
	// References carry the same dependency weight as pointers: a forward
	// declaration satisfies both.
	got := NormalizeType("zVEC3 &")
	assert.True(t, got.IsPointer)
	assert.Equal(t, "zVEC3", got.Name)
}
