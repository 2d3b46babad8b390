// Package build compiles golife for its two targets: a native executable for
// the host and a js/wasm module packaged with its loader for the browser.
//
// Every go invocation goes through GetBuildEnv so both targets see the same
// base environment and differ only in GOOS/GOARCH.
package build

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golife/internal/config"
	"golife/internal/logging"
)

// GetBuildEnv returns the environment for go build commands.
// It merges:
// 1. Essential Go variables from the current process
// 2. Whitelisted env vars from config
// 3. Explicit env_vars from config
func GetBuildEnv(cfg config.BuildConfig) []string {
	env := getBaseGoEnv()

	for _, key := range cfg.AllowedEnvVars {
		if val := os.Getenv(key); val != "" {
			env = setEnvKey(env, key, val)
			logging.BuildDebug("Added whitelisted env: %s", key)
		}
	}

	keys := make([]string, 0, len(cfg.EnvVars))
	for k := range cfg.EnvVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnvKey(env, k, cfg.EnvVars[k])
		logging.BuildDebug("Added build config env: %s=%s", k, cfg.EnvVars[k])
	}

	logging.BuildDebug("Final build environment has %d vars", len(env))
	return env
}

// ForTarget returns env with the GOOS/GOARCH pair the target needs. The
// native target inherits the host values.
func ForTarget(env []string, target Target) []string {
	if target == Web {
		return MergeEnv(env, "GOOS=js", "GOARCH=wasm")
	}
	return MergeEnv(env)
}

// getBaseGoEnv returns essential Go environment variables.
func getBaseGoEnv() []string {
	env := []string{}

	if path := os.Getenv("PATH"); path != "" {
		env = append(env, "PATH="+path)
	}

	essentialVars := []string{
		"GOPATH",
		"GOROOT",
		"GOCACHE",
		"GOMODCACHE",
		"GOTOOLCHAIN",
		"HOME",         // Required on Unix
		"USERPROFILE",  // Required on Windows
		"LOCALAPPDATA", // Required for GOCACHE default on Windows
		"TEMP",
		"TMP",
		"TMPDIR",
	}

	for _, key := range essentialVars {
		if val := os.Getenv(key); val != "" {
			env = append(env, key+"="+val)
		}
	}

	// go refuses to build without a cache directory.
	if !hasEnvKey(env, "GOCACHE") {
		if gocache := deriveGOCACHE(); gocache != "" {
			env = append(env, "GOCACHE="+gocache)
			logging.BuildDebug("Derived GOCACHE: %s", gocache)
		}
	}

	return env
}

// deriveGOCACHE determines a GOCACHE path when not explicitly set.
func deriveGOCACHE() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "go-build")
	}
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		return filepath.Join(userProfile, ".cache", "go-build")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".cache", "go-build")
	}
	for _, key := range []string{"TEMP", "TMP", "TMPDIR"} {
		if tmp := os.Getenv(key); tmp != "" {
			return filepath.Join(tmp, "go-build")
		}
	}
	return ""
}

// lookupEnv returns the value of key in env.
func lookupEnv(env []string, key string) (string, bool) {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return env[i][len(prefix):], true
		}
	}
	return "", false
}

// hasEnvKey checks if an environment key is already set.
func hasEnvKey(env []string, key string) bool {
	_, ok := lookupEnv(env, key)
	return ok
}

// setEnvKey sets or updates an environment variable.
func setEnvKey(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = key + "=" + value
			return env
		}
	}
	return append(env, key+"="+value)
}

// MergeEnv merges additional environment variables into base env.
// Later values override earlier ones.
func MergeEnv(base []string, additional ...string) []string {
	result := make([]string, len(base))
	copy(result, base)

	for _, add := range additional {
		parts := strings.SplitN(add, "=", 2)
		if len(parts) == 2 {
			result = setEnvKey(result, parts[0], parts[1])
		}
	}

	return result
}
