//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"fz":   Test.Fuzz,
	"sm":   Test.Smoke,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"bs":   Bench.Session,
	"prof": Bench.Profile,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

//nolint:gochecknoglobals // read-only target list
var fuzzTargets = []struct{ name, pkg string }{
	{"FuzzEditMatchesScratch", "./pkg/session/"},
	{"FuzzSetText", "./pkg/textbuf/"},
	{"FuzzWriteAtomicRead", "./pkg/fsutil/"},
}

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the gobrackets binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/gobrackets", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gobrackets is up to date")
		return nil
	}
	fmt.Println("Building gobrackets...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/gobrackets", "./cmd/gobrackets")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("bench"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs gobrackets to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gobrackets...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gobrackets")
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Fuzz runs every fuzz target for FUZZTIME (default 30s) each.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s in %s for %s...\n", ft.name, ft.pkg, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime="+fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Smoke builds the binary and runs scan, colorize and verify against the
// repository's own sources.
func (Test) Smoke() error {
	st.Deps(Build)
	fmt.Println("Running smoke checks...")
	bin := filepath.Join("bin", "gobrackets")
	entry := filepath.Join("cmd", "gobrackets", "main.go")
	if err := sh.RunV(bin, "scan", "--format", "summary", "./cmd", "./internal"); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if _, err := sh.Output(bin, "colorize", "--color", "never", entry); err != nil {
		return fmt.Errorf("colorize: %w", err)
	}
	return sh.RunV(bin, "verify", entry,
		"--edit", "1:1:1:1:(",
		"--edit", "2:1:2:1:/* ",
		"--edit", "1:1:1:2:",
	)
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Test.Smoke,
		CI.ModTidy,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	if _, err := sh.Output("git", "diff", "--exit-code", "--", "go.mod", "go.sum"); err != nil {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Session runs the incremental session benchmarks several times and saves
// the output to bench/session.txt for comparison across revisions.
func (Bench) Session() error {
	fmt.Println("Running session benchmarks...")
	if err := os.MkdirAll("bench", 0o755); err != nil {
		return fmt.Errorf("create bench directory: %w", err)
	}
	out, err := sh.Output("go", "test",
		"-run=^$", "-bench=.", "-benchmem", "-count=5",
		"./pkg/session/",
	)
	if err != nil {
		return fmt.Errorf("run benchmarks: %w", err)
	}
	fmt.Println(out)
	return os.WriteFile(filepath.Join("bench", "session.txt"), []byte(out+"\n"), 0o644) //nolint:gosec // benchmark output
}

// Profile records a CPU profile of the edit benchmark in bench/cpu.out.
func (Bench) Profile() error {
	fmt.Println("Profiling incremental edits...")
	if err := os.MkdirAll("bench", 0o755); err != nil {
		return fmt.Errorf("create bench directory: %w", err)
	}
	return sh.RunV("go", "test",
		"-run=^$", "-bench=BenchmarkEdit", "-benchtime=2s",
		"-cpuprofile", filepath.Join("bench", "cpu.out"),
		"-o", filepath.Join("bench", "session.test"),
		"./pkg/session/",
	)
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// gotestsum runs the whole test suite with the given gotestsum format.
func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}
