package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golife/internal/config"
	"golife/internal/life"
	"golife/internal/logging"
	"golife/internal/web"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrWasmExecNotFound is returned when GOROOT ships no wasm_exec.js.
var ErrWasmExecNotFound = errors.New("wasm_exec.js not found in GOROOT (is this a complete Go installation?)")

// wasmExecLocations are checked under GOROOT in order; Go 1.24 moved the
// loader from misc/wasm to lib/wasm.
var wasmExecLocations = []string{
	filepath.Join("lib", "wasm", web.LoaderFile),
	filepath.Join("misc", "wasm", web.LoaderFile),
}

// Result describes one finished build.
type Result struct {
	Target   Target
	Dir      string
	Files    []string
	Duration time.Duration
	Manifest *Manifest
}

// Manifest is written as build.json next to the web output.
type Manifest struct {
	BuildID   string         `json:"build_id"`
	Target    Target         `json:"target"`
	GoVersion string         `json:"go_version"`
	BuiltAt   time.Time      `json:"built_at"`
	Files     []ManifestFile `json:"files"`
}

// ManifestFile is one output file with its digest.
type ManifestFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Builder runs go builds for the configured targets.
type Builder struct {
	cfg       *config.Config
	workspace string
	runner    Runner
	now       func() time.Time
}

// NewBuilder returns a Builder rooted at workspace. A nil runner uses
// ExecRunner.
func NewBuilder(cfg *config.Config, workspace string, runner Runner) *Builder {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Builder{cfg: cfg, workspace: workspace, runner: runner, now: time.Now}
}

// OutputDir returns the absolute output directory for target.
func (b *Builder) OutputDir(target Target) string {
	dir := b.cfg.Build.NativeOutDir
	if target == Web {
		dir = b.cfg.Build.WebOutDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(b.workspace, dir)
}

// Build compiles a single target.
func (b *Builder) Build(ctx context.Context, target Target) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.GetBuildTimeout())
	defer cancel()

	timer := logging.StartTimer(logging.CategoryBuild, "build "+string(target))
	var (
		res *Result
		err error
	)
	switch target {
	case Native:
		res, err = b.buildNative(ctx)
	case Web:
		res, err = b.buildWeb(ctx)
	default:
		return nil, fmt.Errorf("unknown build target %q", target)
	}
	if err != nil {
		logging.BuildError("%s build failed: %v", target, err)
		return nil, fmt.Errorf("%s build: %w", target, err)
	}
	res.Duration = timer.StopWithInfo()
	logging.Build("%s build finished in %s: %s", target, res.Duration.Round(time.Millisecond), res.Dir)
	return res, nil
}

// BuildAll compiles targets concurrently. The targets write to disjoint
// directories, so one failing never touches the other's output.
func (b *Builder) BuildAll(ctx context.Context, targets ...Target) ([]*Result, error) {
	if err := b.checkDisjoint(); err != nil {
		return nil, err
	}
	results := make([]*Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			res, err := b.Build(gctx, t)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Builder) checkDisjoint() error {
	native, webDir := filepath.Clean(b.OutputDir(Native)), filepath.Clean(b.OutputDir(Web))
	sep := string(filepath.Separator)
	if native == webDir || strings.HasPrefix(native, webDir+sep) || strings.HasPrefix(webDir, native+sep) {
		return fmt.Errorf("native output %s and web output %s overlap", native, webDir)
	}
	return nil
}

func (b *Builder) goArgs(out, pkg string) []string {
	args := []string{"build"}
	args = append(args, b.cfg.Build.GoFlags...)
	return append(args, "-o", out, pkg)
}

func (b *Builder) buildNative(ctx context.Context) (*Result, error) {
	dir := b.OutputDir(Native)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	env := ForTarget(GetBuildEnv(b.cfg.Build), Native)
	goos, _ := lookupEnv(env, "GOOS")
	name := nativeBinaryName(goos)

	logging.Build("building native %s -> %s", b.cfg.Build.NativePackage, filepath.Join(dir, name))
	if _, err := b.runner.Run(ctx, b.workspace, env, b.cfg.Build.GoBinary, b.goArgs(filepath.Join(dir, name), b.cfg.Build.NativePackage)...); err != nil {
		return nil, err
	}
	return &Result{Target: Native, Dir: dir, Files: []string{name}}, nil
}

func (b *Builder) buildWeb(ctx context.Context) (*Result, error) {
	dir := b.OutputDir(Web)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	env := ForTarget(GetBuildEnv(b.cfg.Build), Web)

	goroot, goVersion, err := b.goEnv(ctx, env)
	if err != nil {
		return nil, err
	}
	loader, err := FindWasmExec(goroot)
	if err != nil {
		return nil, err
	}

	logging.Build("building web %s -> %s", b.cfg.Build.WebPackage, dir)
	wasmPath := filepath.Join(dir, web.WasmFile)
	if _, err := b.runner.Run(ctx, b.workspace, env, b.cfg.Build.GoBinary, b.goArgs(wasmPath, b.cfg.Build.WebPackage)...); err != nil {
		return nil, err
	}
	if err := copyFile(loader, filepath.Join(dir, web.LoaderFile)); err != nil {
		return nil, fmt.Errorf("copy %s: %w", web.LoaderFile, err)
	}
	logging.BuildDebug("copied loader from %s", loader)

	buildID := uuid.NewString()
	site, err := web.WriteSite(dir, web.Page{
		Title:        b.cfg.Build.Title,
		BuildID:      buildID,
		GridSize:     b.cfg.Game.GridSize,
		Topology:     b.cfg.Game.Topology,
		Frequency:    life.ClampFrequency(b.cfg.Game.UpdateFrequency),
		MinFrequency: life.MinFrequency,
		MaxFrequency: life.MaxFrequency,
		Pattern:      builtinPatternName(b.cfg.Game.Pattern),
	})
	if err != nil {
		return nil, err
	}

	files := append([]string{web.WasmFile, web.LoaderFile}, site...)
	manifest, err := b.writeManifest(dir, buildID, goVersion, files)
	if err != nil {
		return nil, err
	}
	return &Result{Target: Web, Dir: dir, Files: append(files, web.ManifestFile), Manifest: manifest}, nil
}

// builtinPatternName passes builtin names through to the page; file paths
// are not reachable from the browser.
func builtinPatternName(name string) string {
	if _, ok := life.LookupPattern(name); ok {
		return name
	}
	return ""
}

// goEnv asks the toolchain for GOROOT and GOVERSION.
func (b *Builder) goEnv(ctx context.Context, env []string) (goroot, version string, err error) {
	out, err := b.runner.Run(ctx, b.workspace, env, b.cfg.Build.GoBinary, "env", "GOROOT", "GOVERSION")
	if err != nil {
		return "", "", fmt.Errorf("go env: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return "", "", fmt.Errorf("go env returned no GOROOT")
	}
	goroot = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		version = strings.TrimSpace(lines[1])
	}
	return goroot, version, nil
}

// FindWasmExec locates the js/wasm loader shipped with the toolchain.
func FindWasmExec(goroot string) (string, error) {
	for _, rel := range wasmExecLocations {
		p := filepath.Join(goroot, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: looked in %s", ErrWasmExecNotFound, goroot)
}

func (b *Builder) writeManifest(dir, buildID, goVersion string, files []string) (*Manifest, error) {
	m := &Manifest{
		BuildID:   buildID,
		Target:    Web,
		GoVersion: goVersion,
		BuiltAt:   b.now().UTC(),
	}
	for _, name := range files {
		mf, err := digest(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		mf.Name = name
		m.Files = append(m.Files, mf)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, web.ManifestFile), append(data, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}

// ReadManifest loads build.json from a web output directory.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, web.ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", web.ManifestFile, err)
	}
	return &m, nil
}

func digest(path string) (ManifestFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return ManifestFile{}, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return ManifestFile{}, err
	}
	return ManifestFile{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
