package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound not found
	ErrNotFound = errors.New(`Not found`)
	// ErrDuplicate already exists
	ErrDuplicate = errors.New(`Already exists`)
	// ErrTimeout timed out
	ErrTimeout = errors.New(`Timeout`)
	// ErrClosed closed
	ErrClosed = errors.New(`Closed`)
	// ErrUnsupported the command is not supported by this kind of device
	ErrUnsupported = errors.New(`Unsupported command`)
	// ErrOutOfRange the command value is outside the accepted range
	ErrOutOfRange = errors.New(`Value out of range`)
	// ErrMissingValue the command requires a value and none was given
	ErrMissingValue = errors.New(`Missing value`)
	// ErrMissingHost no bridge host was configured
	ErrMissingHost = errors.New(`Missing host`)
	// ErrNotConnected the session has not been set up
	ErrNotConnected = errors.New(`Not connected`)
	// ErrNoAck the bridge did not acknowledge the request
	ErrNoAck = errors.New(`No acknowledgement`)
)

// ConfigurationError is returned when the custom parameters can not be used.
// Discovery does not run while the configuration is invalid.
type ConfigurationError struct {
	Param string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %q: %v", e.Param, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConnectionError is returned when a session to a bridge could not be set up
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandError is returned when a command was rejected, or failed after the
// reconnect retry
type CommandError struct {
	Address string
	Command CommandName
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Command, e.Address, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
