//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

const binary = "bin/integrity-report"

// Build builds the integrity-report binary with version metadata.
func Build() error {
	ldflags := fmt.Sprintf(
		"-X github.com/dahlj/integrity-report/internal/version.Version=%s "+
			"-X github.com/dahlj/integrity-report/internal/version.CommitHash=%s "+
			"-X github.com/dahlj/integrity-report/internal/version.BuildDate=%s",
		gitDescribe(), gitCommit(), time.Now().UTC().Format(time.RFC3339))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, "./cmd/integrity-report")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs vet and golangci-lint
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// QA runs format check, lint, tests and a full build
func QA() error {
	mg.SerialDeps(Lint, Test, Build)
	return nil
}

func gitDescribe() string {
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil {
		return v
	}
	return "dev"
}

func gitCommit() string {
	if v, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil {
		return v
	}
	return "unknown"
}
