// Package testutil provides filesystem helpers for liscaf tests.
//
// Helpers work on any types.FS, so the same test reads the same against
// an afero memory filesystem or a t.TempDir() on disk. Trees are described
// inline as maps from slash-separated relative paths to file contents.
package testutil
