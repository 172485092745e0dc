// Package replace applies captured selections back to a buffer.
//
// A replacement is mode-aware (character, line, or block) and lands in the
// buffer as a single undo unit no matter how many line mutations it takes.
// Optional formatting and persistence collaborators run best-effort after a
// successful replacement; their failures never unwind the applied edit.
package replace
