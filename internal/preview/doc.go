// Package preview computes line diffs between the selected text and its
// replacement and presents them for confirmation before the buffer changes.
//
// The diff is intentionally simple: common prefix, common suffix, and a
// changed middle shown as deletions followed by insertions. Replacements are
// small enough that a minimal edit script buys nothing.
package preview
