package main

import (
	"context"
	"fmt"

	"golife/internal/build"

	"github.com/spf13/cobra"
)

// verifyCmd checks a web output directory
var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check that a web build is loadable by a browser",
	Long: `Inspects the web output directory without a browser: main.wasm must be a
valid module exporting the entry points wasm_exec.js calls, import only from
the browser glue, and ship next to wasm_exec.js and an index.html that
references both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := resolvePath(cfg.Root())
	if len(args) == 1 {
		dir = resolvePath(args[0])
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return runVerifyDir(ctx, cmd, dir)
}

func runVerifyDir(ctx context.Context, cmd *cobra.Command, dir string) error {
	report, err := build.Verify(ctx, dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, c := range report.Checks {
		mark := "ok  "
		if !c.OK {
			mark = "FAIL"
		}
		fmt.Fprintf(out, "%s %-8s %s\n", mark, c.Name, c.Detail)
	}
	if !report.OK() {
		return fmt.Errorf("verify %s: %d of %d checks failed", relToWorkspace(dir), len(report.Failures()), len(report.Checks))
	}
	return nil
}
