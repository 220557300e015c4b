// Package scaffold runs the whole pipeline: fetch a template, build the
// substitution plan, walk the template, merge with the destination, report
// and commit.
//
// Every fatal check (names, source, plan) happens before anything is
// written. Per file problems never abort a run; they end up in the
// report, and a run with write failures is reported as failed.
package scaffold
