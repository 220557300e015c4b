// Package filesystem provides filesystem implementations for liscaf.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed one used by tests and
// in-memory previews.
package filesystem
