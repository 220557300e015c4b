// Package walker turns a template tree into an ordered list of planned
// file actions.
//
// The walk never mutates anything. Every file is read once, classified,
// and rewritten in memory; every path segment is rewritten with the same
// plan. The resulting actions are sorted by destination path so that a
// parent directory always precedes its children and identical inputs
// always produce identical plans.
package walker
