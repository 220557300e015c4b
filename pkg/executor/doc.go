// Package executor commits resolved merge writes to disk.
//
// Apply performs every write in order and keeps going when one fails, so a
// single unwritable file never hides the rest of the run; failures are
// collected in the returned Report. ApplyInPlace rewrites a tree onto
// itself, writing all new content before any original is removed.
package executor
