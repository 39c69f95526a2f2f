//go:build mage

// Package main provides build targets for the roster project using Mage.
//
// Usage:
//
//	mage build        Compile the roster binary to bin/
//	mage test:all     Run all tests
//	mage test:unit    Run tests without the CLI package
//	mage test:debug   Run all tests with consistency panics enabled
//	mage lint         Run golangci-lint
//	mage clean        Remove build artifacts
//	mage install      Install roster to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "roster"
	binaryDir  = "bin"
	cmdDir     = "./cmd/roster"

	versionVar = "github.com/mesh-intelligence/roster/internal/cli.Version"
)

// version is taken from ROSTER_VERSION, falling back to the git description.
func version() string {
	if v := os.Getenv("ROSTER_VERSION"); v != "" {
		return v
	}
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		return v
	}
	return "dev"
}

// Build compiles the roster binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + versionVar + "=" + version()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
