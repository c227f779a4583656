package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrRejected        = errors.New("request rejected")
	ErrBackupsDisabled = errors.New("remote backups are not configured on the server")
)
