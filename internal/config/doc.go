// Package config defines the format-agnostic declaration model for parameter
// schemas and sweeps, along with the Loader interface implemented by each
// declaration format.
//
// The `config.Model` is the single source of truth for the `registry`
// package, which resolves it into schemas. Concrete loaders, for HCL and
// YAML, are provided in separate packages.
package config
