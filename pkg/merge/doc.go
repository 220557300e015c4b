// Package merge reconciles planned actions with a destination tree that
// may already hold files.
//
// Nothing here writes. Each action is compared with what is on disk and
// resolved to an outcome plus the concrete writes the executor must
// perform:
//
//   - nothing at the destination: the incoming file is written
//   - identical bytes: skipped
//   - both sides text and different: one file with conflict markers
//   - either side binary and different: the incoming bytes go to a
//     sidecar next to the untouched destination, plus a note
//   - destination unreadable: a warning, and the incoming bytes go to the
//     sidecar name
package merge
