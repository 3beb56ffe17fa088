//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Serve builds the CLI and starts the HTTP API on the configured address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}

// Generate builds the CLI and resolves or generates a course for topic,
// printing it as YAML.
func Generate(topic string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "generate", topic)
}

// Catalog builds the CLI and lists the catalog.
func Catalog() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "catalog")
}
