// Package cli provides the interactive PaperKeeper command-line client.
//
// It loads the saved session, talks to the HTTP API through
// internal/client/client and runs a small REPL for managing libraries,
// papers, notes and page summaries.
package cli
