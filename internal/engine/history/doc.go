// Package history provides undo/redo management for buffer edits.
//
// Edits are recorded as Commands. Commands executed between BeginGroup and
// EndGroup collapse into a single compound command, so one undo restores the
// buffer across any number of primitive line mutations.
package history
