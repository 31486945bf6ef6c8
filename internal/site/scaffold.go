package site

import (
	"fmt"
	"os"
)

// PageFile is the rendered entry page inside each company folder.
const PageFile = "index.html"

// Scaffold copies the whole template tree into a new company folder.
// The destination must not already exist; the caller decides whether a
// pre-existing folder is an error or an idempotent no-op.
func Scaffold(templateDir, destDir string) error {
	info, err := os.Stat(templateDir)
	if err != nil {
		return fmt.Errorf("template folder not found: %s: %w", templateDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("template path is not a directory: %s", templateDir)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create company folder %s: %w", destDir, err)
	}
	if err := os.CopyFS(destDir, os.DirFS(templateDir)); err != nil {
		return fmt.Errorf("copy template into %s: %w", destDir, err)
	}
	return nil
}
