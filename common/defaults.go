package common

import "time"

const (
	// DefaultPort is the UDP port of a v6 bridge
	DefaultPort = 5987
	// DefaultSessionTimeout bounds a single round trip to a bridge
	DefaultSessionTimeout = 30 * time.Second
	// DefaultTimeout bounds blocking operations such as subscription writes
	DefaultTimeout = 2 * time.Second
	// DefaultShortPoll is the interval between short polls
	DefaultShortPoll = 10 * time.Second
	// DefaultLongPoll is the interval between long polls (heartbeats)
	DefaultLongPoll = 30 * time.Second
)
