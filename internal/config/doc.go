// Package config loads, normalizes, and validates autocut configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: training and input directories, the styles directory,
// speech-to-text collaborator settings, and workflow parallelism.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
