// Package config turns loosely-typed blockade configuration input into a
// validated Configuration.
//
// This package is part of the functional core: every function is pure (no
// I/O, no side effects). Reading files and logging belong to the caller.
//
// # Functions
//
//   - FromMap: Normalize a raw nested mapping into a Configuration
//   - ParseYAML: Decode a YAML document and normalize it with FromMap
//   - DefaultNetwork: The built-in network fault parameters
//
// # Normalization
//
// Fields that accept either a list or a mapping are resolved once, at load
// time, into a single map shape:
//
//	links:   [c1]              -> {"c1": "c1"}
//	volumes: {"/data": null}   -> {"/data": "/data"}
//	ports:   [10000]           -> {"10000": "10000"}
//
// Every failure is a *ConfigError whose Kind names the violated rule.
package config
