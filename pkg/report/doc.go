// Package report renders the outcome of a run, or the preview of one, for
// people (styled or plain text) and for machines (JSON).
//
// Rendering is deterministic: the same inputs always produce the same
// bytes. Nothing time dependent is included and every list keeps the
// order of the plan.
package report
