// Package services holds the oracle server's use cases: recording
// analytics, answering catalogue lookups and issuing presigned URLs for
// backup archives. Transports in internal/server/grpc and
// internal/server/http call into these; none of them touch fortunes, which
// are only ever computed on the client.
package services
