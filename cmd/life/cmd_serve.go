package main

import (
	"context"
	"fmt"

	"golife/internal/build"
	"golife/internal/logging"
	"golife/internal/serve"
	"golife/internal/watch"

	"github.com/spf13/cobra"
)

// serveCmd serves the web build locally
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the web target and serve it at http://localhost:8000",
	Long: `Builds the web target (unless --no-build) and serves the output directory.
Open the printed URL in a browser to load the WebAssembly module.

With --watch, edits to Go sources rebuild the web target; reload the page to
pick them up.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if addr, _ := flags.GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}
	if dir, _ := flags.GetString("dir"); dir != "" {
		cfg.Serve.Dir = dir
	}
	noBuild, _ := flags.GetBool("no-build")
	watchSources, _ := flags.GetBool("watch")

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	builder := newBuilder()
	rebuild := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		_, err := builder.Build(ctx, build.Web)
		return err
	}

	// A custom --dir is served as-is; only the web output dir is rebuilt.
	servingBuild := cfg.Serve.Dir == ""
	if servingBuild && !noBuild {
		if err := rebuild(ctx); err != nil {
			return err
		}
	}

	srv, err := serve.New(cfg, resolvePath(cfg.Root()))
	if err != nil {
		return err
	}

	if watchSources && servingBuild {
		w, err := watch.New(workspace, cfg.GetWatchDebounce(), rebuild, cfg.Build.WebOutDir, cfg.Build.NativeOutDir)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()
	}

	logging.Serve("serving %s on %s", srv.Root(), cfg.Serve.Addr)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s (ctrl+c to stop)\n", relToWorkspace(srv.Root()), cfg.Serve.Addr)
	return srv.ListenAndServe(ctx)
}
