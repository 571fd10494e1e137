//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"codeberg.org/snonux/easynmt/internal"
)

const binaryName = "easynmt"

var Default = Build

// Build compiles the easynmt binary into the project root.
func Build() error {
	ldflags := fmt.Sprintf("-X codeberg.org/snonux/easynmt/internal.Version=%s", internal.Version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binaryName, "./cmd/easynmt")
}

// Test runs all unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)

	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	binDir := filepath.Join(gopath, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	return sh.Copy(filepath.Join(binDir, binaryName), binaryName)
}

// Clean removes the built binary.
func Clean() error {
	return sh.Rm(binaryName)
}
