package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEndToEnd(t *testing.T) {
	out := t.TempDir()

	err := newApp().Run([]string{
		"sdkgen",
		"--dump", "testdata/example.sym",
		"--structs", "testdata/example.structs",
		"--config", "testdata/sdkgen.yaml",
		"--output", out,
	})
	require.NoError(t, err)

	header, err := os.ReadFile(filepath.Join(out, "zCVob.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "#ifndef GOTHIC_SDK_ZCVOB_H")
	assert.Contains(t, string(header), "class zCVob : public zCObject {")
	assert.Contains(t, string(header), "class zCWorld;")
	assert.Contains(t, string(header), `#include "zTBBox3D.h"`)
	assert.Contains(t, string(header), `#include "zSTRING.h"`)

	source, err := os.ReadFile(filepath.Join(out, "zCVob.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(source), "mov eax, 0x0052A1B0")

	// zSTRING never appears as a class: it gets a placeholder header.
	placeholder, err := os.ReadFile(filepath.Join(out, "zSTRING.h"))
	require.NoError(t, err)
	assert.Contains(t, string(placeholder), "struct zSTRING {")

	// Whitelisted free-standing functions land in the per-platform pair;
	// the blacklisted CRT helper and the non-whitelisted symbol do not.
	global, err := os.ReadFile(filepath.Join(out, "GlobalFunctions_Win32.h"))
	require.NoError(t, err)
	assert.Contains(t, string(global), "CreateEngine_Address")
	assert.Contains(t, string(global), "ExitSessionStartup_Address")
	assert.NotContains(t, string(global), "_crt_internal_helper")

	unity, err := os.ReadFile(filepath.Join(out, "UnityBuild.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(unity), `#include "zCVob.cpp"`)
}
