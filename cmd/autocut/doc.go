// Package main hosts the autocut CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// learning runs, deterministic apply runs, directory watching, profile
// inspection, run-history queries, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
