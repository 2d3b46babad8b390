package build

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golife/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsWasmModule assembles a minimal module shaped like GOOS=js output: one
// function imported from importModule, exports run/resume/getsp and memory
// mem. resumeName replaces the "resume" export (it must be 6 bytes long).
func jsWasmModule(importModule, resumeName string) []byte {
	if len(importModule) != 4 || len(resumeName) != 6 {
		panic("fixed-width names keep section sizes constant")
	}
	b := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	// type: ()->(), (i32)->(), ()->(i32), (i32,i32)->()
	b = append(b, 0x01, 0x11, 0x04,
		0x60, 0x00, 0x00,
		0x60, 0x01, 0x7f, 0x00,
		0x60, 0x00, 0x01, 0x7f,
		0x60, 0x02, 0x7f, 0x7f, 0x00)
	// import: <importModule>.debug (type 1)
	b = append(b, 0x02, 0x0e, 0x01, 0x04)
	b = append(b, importModule...)
	b = append(b, 0x05, 'd', 'e', 'b', 'u', 'g', 0x00, 0x01)
	// function: run(type 3), resume(type 0), getsp(type 2)
	b = append(b, 0x03, 0x04, 0x03, 0x03, 0x00, 0x02)
	// memory: min 1 page
	b = append(b, 0x05, 0x03, 0x01, 0x00, 0x01)
	// export
	b = append(b, 0x07, 0x1e, 0x04,
		0x03, 'r', 'u', 'n', 0x00, 0x01,
		0x06)
	b = append(b, resumeName...)
	b = append(b, 0x00, 0x02,
		0x05, 'g', 'e', 't', 's', 'p', 0x00, 0x03,
		0x03, 'm', 'e', 'm', 0x02, 0x00)
	// code
	b = append(b, 0x0a, 0x0c, 0x03,
		0x02, 0x00, 0x0b,
		0x02, 0x00, 0x0b,
		0x04, 0x00, 0x41, 0x00, 0x0b)
	return b
}

const fakeLoader = "\"use strict\";\n(() => {\n\tglobalThis.Go = class {\n\t\tconstructor() {}\n\t};\n})();\n"

func writeSite(t *testing.T, module []byte) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, web.WasmFile), module, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, web.LoaderFile), []byte(fakeLoader), 0644))
	_, err := web.WriteSite(dir, web.Page{GridSize: 32})
	require.NoError(t, err)
	return dir
}

func checkByName(r *Report, name string) Check {
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	return Check{Name: name}
}

func TestVerify_ValidSite(t *testing.T) {
	dir := writeSite(t, jsWasmModule("gojs", "resume"))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, r.OK(), "failures: %+v", r.Failures())
	for _, name := range []string{"module", "exports", "imports", "loader", "index"} {
		assert.True(t, checkByName(r, name).OK, name)
	}
}

func TestVerify_NativeOnlyImports(t *testing.T) {
	dir := writeSite(t, jsWasmModule("wasi", "resume"))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, r.OK())
	c := checkByName(r, "imports")
	assert.False(t, c.OK)
	assert.Contains(t, c.Detail, "wasi")
}

func TestVerify_MissingExport(t *testing.T) {
	dir := writeSite(t, jsWasmModule("gojs", "resumX"))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	c := checkByName(r, "exports")
	assert.False(t, c.OK)
	assert.Contains(t, c.Detail, "resume")
}

func TestVerify_CorruptModule(t *testing.T) {
	dir := writeSite(t, []byte("not wasm at all"))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, checkByName(r, "module").OK)
	assert.Len(t, r.Failures(), 1, "only the module check should fail")
}

func TestVerify_MissingGlue(t *testing.T) {
	dir := writeSite(t, jsWasmModule("gojs", "resume"))
	require.NoError(t, os.Remove(filepath.Join(dir, web.LoaderFile)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, web.IndexFile), []byte("<html></html>"), 0644))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, checkByName(r, "loader").OK)
	assert.False(t, checkByName(r, "index").OK)
	assert.True(t, checkByName(r, "module").OK)
}

func TestVerify_ToolchainLoader(t *testing.T) {
	loader, err := FindWasmExec(runtime.GOROOT())
	if err != nil {
		t.Skipf("no wasm_exec.js in this toolchain: %v", err)
	}
	dir := writeSite(t, jsWasmModule("gojs", "resume"))
	require.NoError(t, copyFile(loader, filepath.Join(dir, web.LoaderFile)))

	r, err := Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, checkByName(r, "loader").OK, "failures: %+v", r.Failures())
	assert.True(t, r.OK(), "failures: %+v", r.Failures())
}

func TestVerify_LoaderShapes(t *testing.T) {
	cases := []struct {
		name   string
		loader string
		ok     bool
	}{
		{"assigned class", "globalThis.Go = class {\n};", true},
		{"assigned without spaces", "global.Go=class{};", true},
		{"named class", "class Go {\n}", true},
		{"other class", "globalThis.Runtime = class {};", false},
		{"mention only", "// run with new Go()", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeSite(t, jsWasmModule("gojs", "resume"))
			require.NoError(t, os.WriteFile(filepath.Join(dir, web.LoaderFile), []byte(tc.loader), 0644))

			r, err := Verify(context.Background(), dir)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, checkByName(r, "loader").OK)
		})
	}
}

func TestVerify_NotADirectory(t *testing.T) {
	_, err := Verify(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReport_EmptyIsNotOK(t *testing.T) {
	assert.False(t, (&Report{}).OK())
}
