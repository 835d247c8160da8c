// Package manifest reads and rewrites Cargo-style TOML workspace
// manifests. It loads the root manifest plus every workspace member,
// enforces the shared release version, performs the byte-preserving
// version rewrite, and computes the dependency-ordered publish sequence.
package manifest
