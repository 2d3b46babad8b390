// Package web holds the page that loads the golife WebAssembly module.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Fixed names inside the web output directory.
const (
	IndexFile    = "index.html"
	StyleFile    = "style.css"
	WasmFile     = "main.wasm"
	LoaderFile   = "wasm_exec.js"
	ManifestFile = "build.json"
	CanvasID     = "life"
)

//go:embed assets/index.html.tmpl assets/style.css
var assets embed.FS

var indexTemplate = template.Must(template.ParseFS(assets, "assets/index.html.tmpl"))

// Page is the data rendered into index.html.
type Page struct {
	Title        string
	BuildID      string
	GridSize     int
	Topology     string
	Frequency    float64
	MinFrequency float64
	MaxFrequency float64
	Pattern      string

	CanvasID   string
	WasmFile   string
	LoaderFile string
}

func (p Page) withDefaults() Page {
	if p.CanvasID == "" {
		p.CanvasID = CanvasID
	}
	if p.WasmFile == "" {
		p.WasmFile = WasmFile
	}
	if p.LoaderFile == "" {
		p.LoaderFile = LoaderFile
	}
	if p.Title == "" {
		p.Title = "Conway's Game of Life"
	}
	return p
}

// Render writes index.html for p.
func Render(w io.Writer, p Page) error {
	if err := indexTemplate.ExecuteTemplate(w, "index.html.tmpl", p.withDefaults()); err != nil {
		return fmt.Errorf("render %s: %w", IndexFile, err)
	}
	return nil
}

// WriteSite renders index.html and copies the stylesheet into dir.
// It returns the names of the files written.
func WriteSite(dir string, p Page) ([]string, error) {
	f, err := os.Create(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", IndexFile, err)
	}
	if err := Render(f, p); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", IndexFile, err)
	}

	css, err := fs.ReadFile(assets, "assets/"+StyleFile)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, StyleFile), css, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", StyleFile, err)
	}
	return []string{IndexFile, StyleFile}, nil
}
