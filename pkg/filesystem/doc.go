// Package filesystem provides the file primitives gardener builds on.
//
// All IO goes through an afero.Fs so the same code runs against the OS
// filesystem in the CLI and an in-memory filesystem in tests. Writes that
// replace a file (settings, published notes) are atomic: data lands in a
// temp file next to the target and is renamed over it, so readers never
// see a partial file at the target path.
package filesystem
