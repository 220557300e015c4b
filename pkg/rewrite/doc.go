// Package rewrite applies a substitution plan to file contents and
// relative paths.
//
// Contents are classified once as text or binary. Binary contents pass
// through untouched; text goes through the plan's single scan. Paths are
// rewritten one segment at a time so a replacement can never introduce or
// remove a directory level.
package rewrite
