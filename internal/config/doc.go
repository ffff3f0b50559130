// Package config loads, normalizes, and validates the thumbtrack TOML
// configuration. CLI flags layer on top of the values returned here.
package config
