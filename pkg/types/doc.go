// Package types defines the values shared by the rewriting pipeline:
// the filesystem interface, the planned FileAction produced by the walker,
// and the outcomes, conflict records and warnings produced by the merge
// engine and the executor.
package types
