// Package transform sends captured text to an AI transformation provider.
//
// A provider turns (text, instruction) into replacement text. Requests run as
// cancellable background jobs with a caller-configured deadline; completion,
// cancellation, and timeout are mutually exclusive terminal outcomes for one
// job. Provider implementations live in the subpackages.
package transform
