//go:build !(js && wasm)

// Command lifeweb is the browser front end. It only runs as WebAssembly;
// build it with `life build web` (or GOOS=js GOARCH=wasm go build).
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "lifeweb runs in the browser: build it with `life build web` and open it with `life serve`")
	os.Exit(2)
}
