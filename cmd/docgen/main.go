// Package main generates Markdown API reference pages for the timing
// packages using gomarkdoc.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Package is a Go package to document.
type Package struct {
	Name     string
	Title    string
	Path     string
	Position int
}

// Packages to document, in sidebar order.
var packages = []Package{
	{Name: "animation", Title: "Animation Timing", Path: "pkg/animation", Position: 1},
	{Name: "errors", Title: "Errors", Path: "pkg/errors", Position: 2},
	{Name: "testing", Title: "Testing Helpers", Path: "pkg/testing", Position: 3},
}

func main() {
	out := flag.String("o", filepath.Join("docs", "api"), "output directory, relative to the repository root")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

func run(out string) error {
	root, err := findRepoRoot()
	if err != nil {
		return fmt.Errorf("finding repo root: %w", err)
	}
	if err := ensureGomarkdoc(); err != nil {
		return fmt.Errorf("installing gomarkdoc: %w", err)
	}

	apiDir := filepath.Join(root, out)
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		return err
	}

	var written int
	for _, pkg := range packages {
		if _, err := os.Stat(filepath.Join(root, pkg.Path)); os.IsNotExist(err) {
			fmt.Printf("skip %s: not found\n", pkg.Path)
			continue
		}
		if err := generatePackageDocs(root, pkg, apiDir); err != nil {
			return fmt.Errorf("%s: %w", pkg.Path, err)
		}
		written++
	}

	fmt.Printf("Wrote %d reference pages to %s\n", written, apiDir)
	return nil
}

func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

func ensureGomarkdoc() error {
	if _, err := exec.LookPath("gomarkdoc"); err == nil {
		return nil
	}
	fmt.Println("Installing gomarkdoc...")
	cmd := exec.Command("go", "install", "github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func generatePackageDocs(root string, pkg Package, apiDir string) error {
	cmd := exec.Command("gomarkdoc", "./"+pkg.Path)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gomarkdoc: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	if stdout.Len() == 0 {
		return fmt.Errorf("gomarkdoc produced no output")
	}

	page := renderPage(pkg, stdout.String())
	return os.WriteFile(filepath.Join(apiDir, pkg.Name+".md"), []byte(page), 0o644)
}
