// Package buffer provides a line-oriented text buffer.
//
// The buffer is the single mutable collaborator of the selection and
// replacement layers. All line numbers crossing the package boundary are
// 1-based and ranges are inclusive; conversion to slice indices happens
// exactly once, inside this package.
package buffer
