// Package cli provides the interactive fitlog command-line client.
//
// It wires configuration, the local token database, the API clients, the
// auth service and the application shell, then runs a REPL over them.
// Every screen is a shell route: list and detail commands navigate and
// render, mutation commands prompt for fields and call the matching shell
// handler.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
