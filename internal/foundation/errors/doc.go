// Package errors provides the classified error primitives used across the assembler.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (what kind of input or stage failed), a severity, structured context
// and the underlying cause. The CLI adapter turns categories into exit codes.
//
// Example usage:
//
//	err := errors.DataError("could not parse data file").
//		WithContext("file", path).
//		WithCause(parseErr).
//		Build()
package errors
