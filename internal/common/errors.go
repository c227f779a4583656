// Package common holds sentinel errors shared by the client and server
// layers. Match them with errors.Is.
package common

import "errors"

var (
	// ErrorNotFound is returned by repositories when a row or key is absent.
	ErrorNotFound = errors.New("not found")

	// ErrorInternal hides unexpected failures behind a stable message.
	ErrorInternal = errors.New("internal error")

	// ErrorValidation is returned for malformed caller input.
	ErrorValidation = errors.New("validation error")

	// ErrorStorageDisabled is returned when an optional backend is not configured.
	ErrorStorageDisabled = errors.New("storage backend not configured")
)
