// Package client contains the client-side plumbing for the fortune seal CLI.
//
// It provides:
//  1. The Client interface for the optional oracle server: health Ping,
//     TemplateCount, TrackEvent and presigned backup URLs.
//  2. GRPCClient, a gRPC implementation that stamps every call with the
//     anonymous install id and maps status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     NewRepositories) over SQLite with embedded goose migrations.
//
// Sentinel errors: ErrUnavailable, ErrRejected, ErrBackupsDisabled.
package client
