package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golife/internal/build"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// buildCmd compiles one or more targets
var buildCmd = &cobra.Command{
	Use:   "build [native|web|all]...",
	Short: "Build the native executable and/or the WebAssembly site",
	Long: `Builds the requested targets. "native" produces bin/life for this machine;
"web" compiles cmd/lifeweb with GOOS=js GOARCH=wasm into the web output
directory together with wasm_exec.js from GOROOT and an index.html that
loads it. "all" builds both concurrently; their outputs never overlap.

Example:
  life build web
  life build all --verify`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{"native", "web", "all"},
	RunE:      runBuild,
}

// newBuilder is swapped in tests to avoid invoking the toolchain.
var newBuilder = func() *build.Builder {
	return build.NewBuilder(cfg, workspace, nil)
}

func runBuild(cmd *cobra.Command, args []string) error {
	targets, err := build.ParseTargets(args...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	results, err := newBuilder().BuildAll(ctx, targets...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintf(out, "%-6s %s (%s)\n", res.Target, relToWorkspace(res.Dir), res.Duration.Round(time.Millisecond))
		for _, f := range res.Files {
			fmt.Fprintf(out, "       %s\n", f)
		}
		if res.Manifest != nil {
			logger.Info("Web build", zap.String("build_id", res.Manifest.BuildID), zap.String("go", res.Manifest.GoVersion))
		}
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		for _, res := range results {
			if res.Target != build.Web {
				continue
			}
			if err := runVerifyDir(ctx, cmd, res.Dir); err != nil {
				return err
			}
		}
	}
	return nil
}

func relToWorkspace(p string) string {
	if rel, err := filepath.Rel(workspace, p); err == nil && !filepath.IsAbs(rel) && rel != "" && rel[0] != '.' {
		return rel
	}
	return p
}
