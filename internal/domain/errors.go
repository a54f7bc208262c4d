package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured indicates the ChannelEngine credentials are missing.
	ErrNotConfigured = errors.New("channelengine credentials not configured")
)
