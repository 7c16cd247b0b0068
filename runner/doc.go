// Package runner records the outcomes of a shortcut acceptance run.
//
// The main components are:
//   - Recorder: Append-only, insertion-ordered store of outcomes with per-status counters
//   - Clock: Injectable time source used to stamp outcomes
//
// A Recorder is created fresh for every run and handed to the reporting package once
// all cases have been recorded.
package runner
