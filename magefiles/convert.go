//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and runs a default conversion, downloading the
// journal list and prompting for the columns to keep.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "convert")
}

// View builds the CLI and opens the viewer on the default snapshot.
func View() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "view")
}
