//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"codeberg.org/snonux/spellbee/internal"
)

const (
	binary  = "spellbee"
	mainPkg = "./cmd/spellbee"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the spellbee binary
func Build() error {
	fmt.Printf("Building %s v%s\n", binary, internal.Version)
	return sh.RunV("go", "build", "-o", binary, mainPkg)
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// PropertyTest runs the property based tests
func PropertyTest() error {
	return sh.RunV("go", "test", "-tags", "property", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(home, "go", "bin", binary)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return sh.Copy(dest, binary)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}

// All runs vet, the unit tests and the property tests
func All() {
	mg.SerialDeps(Vet, Test, PropertyTest)
}
