// Package session coordinates one edit cycle: capture a selection, run the
// transformation in the background, optionally confirm a preview, and write
// the result back as a single undo unit.
//
// A Session owns at most one outstanding cycle. Triggering a second cycle
// while one is in flight fails with ErrBusy; the outstanding flag clears
// whenever the cycle reaches any terminal outcome.
package session
