// Package pipeline is the host side of the assembler: it reads input files,
// hands them one at a time to a Transform and writes what comes back.
//
// A transform never panics or returns out of band. Each file yields a Result
// carrying either the transformed file or a *PluginError, and the run policy
// (continue or stop) decides what happens after a failure.
package pipeline
