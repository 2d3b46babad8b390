package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golife/internal/logging"
	"golife/internal/web"

	"github.com/tetratelabs/wazero"
)

// Exports the js/wasm loader calls into; see wasm_exec.js.
var requiredExports = []string{"run", "resume", "getsp"}

// Import namespaces provided by wasm_exec.js ("go" before Go 1.21).
var browserImportModules = map[string]bool{"gojs": true, "go": true}

// goClassPattern matches the loader's class definition in both the current
// `globalThis.Go = class {` form and a named `class Go` declaration.
var goClassPattern = regexp.MustCompile(`\bGo\s*=\s*class\b|\bclass\s+Go\b`)

// Check is one verification step.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report is the outcome of Verify.
type Report struct {
	Dir    string
	Checks []Check
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return len(r.Checks) > 0
}

// Failures returns the failed checks.
func (r *Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

func (r *Report) add(name string, ok bool, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Detail: fmt.Sprintf(format, args...)})
}

// Verify inspects a web output directory: the module must compile, expose
// the exports wasm_exec.js drives, import only from the browser glue, and
// ship with the loader and page that reference it. A non-nil error means
// the directory could not be inspected at all.
func Verify(ctx context.Context, dir string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("verify %s: not a directory", dir)
	}

	timer := logging.StartTimer(logging.CategoryVerify, "verify")
	defer timer.Stop()

	r := &Report{Dir: dir}
	verifyModule(ctx, r, filepath.Join(dir, web.WasmFile))

	loader, err := os.ReadFile(filepath.Join(dir, web.LoaderFile))
	switch {
	case err != nil:
		r.add("loader", false, "%s: %v", web.LoaderFile, err)
	case !goClassPattern.Match(loader):
		r.add("loader", false, "%s does not define the Go class", web.LoaderFile)
	default:
		r.add("loader", true, "%s (%d bytes)", web.LoaderFile, len(loader))
	}

	index, err := os.ReadFile(filepath.Join(dir, web.IndexFile))
	if err != nil {
		r.add("index", false, "%s: %v", web.IndexFile, err)
	} else {
		var missing []string
		for _, ref := range []string{web.WasmFile, web.LoaderFile} {
			if !bytes.Contains(index, []byte(ref)) {
				missing = append(missing, ref)
			}
		}
		if len(missing) > 0 {
			r.add("index", false, "%s does not reference %s", web.IndexFile, strings.Join(missing, ", "))
		} else {
			r.add("index", true, "%s references %s and %s", web.IndexFile, web.WasmFile, web.LoaderFile)
		}
	}

	for _, c := range r.Failures() {
		logging.Get(logging.CategoryVerify).Warnw("check failed", "check", c.Name, "detail", c.Detail)
	}
	return r, nil
}

func verifyModule(ctx context.Context, r *Report, path string) {
	bin, err := os.ReadFile(path)
	if err != nil {
		r.add("module", false, "%s: %v", web.WasmFile, err)
		return
	}

	// Compilation validates the binary; the interpreter skips native codegen.
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	cm, err := rt.CompileModule(ctx, bin)
	if err != nil {
		r.add("module", false, "%s does not compile: %v", web.WasmFile, err)
		return
	}
	defer cm.Close(ctx)
	r.add("module", true, "%s compiles (%d bytes)", web.WasmFile, len(bin))

	exports := cm.ExportedFunctions()
	var missing []string
	for _, name := range requiredExports {
		if _, ok := exports[name]; !ok {
			missing = append(missing, name)
		}
	}
	if _, ok := cm.ExportedMemories()["mem"]; !ok {
		missing = append(missing, "mem")
	}
	if len(missing) > 0 {
		r.add("exports", false, "missing %s; was it built with GOOS=js GOARCH=wasm?", strings.Join(missing, ", "))
	} else {
		r.add("exports", true, "exports %s and mem", strings.Join(requiredExports, ", "))
	}

	foreign := make(map[string]bool)
	for _, def := range cm.ImportedFunctions() {
		mod, _, _ := def.Import()
		if !browserImportModules[mod] {
			foreign[mod] = true
		}
	}
	if len(foreign) > 0 {
		var mods []string
		for m := range foreign {
			mods = append(mods, m)
		}
		sort.Strings(mods)
		r.add("imports", false, "imports from non-browser modules: %s", strings.Join(mods, ", "))
	} else {
		r.add("imports", true, "%d imports, all provided by %s", len(cm.ImportedFunctions()), web.LoaderFile)
	}
}
