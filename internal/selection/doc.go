// Package selection captures editor selections as immutable snapshots.
//
// A capture decodes the mode-specific column semantics (character-wise,
// line-wise, rectangular block) into absolute line/column coordinates and the
// exact source text. Columns are codepoint offsets, never raw bytes, so
// captures stay correct under multi-byte text.
package selection
