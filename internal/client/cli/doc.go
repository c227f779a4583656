// Package cli provides the interactive fortune seal command-line client.
//
// It wires configuration, the local SQLite store, the fortune engine and an
// optional oracle server into a REPL. Fortunes are always computed locally;
// the server only adds analytics and remote backups, so the CLI keeps
// working offline. A background watcher pings the server and flips the
// prompt between online and offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
