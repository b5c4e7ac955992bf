// Package protocol implements the MiLight WiFi bridge protocol.
//
// This package is not designed to used directly by end users, other than to
// specify a protocol version when creating a new Controller from the milight
// package.
//
// The currently implemented protocol versions are:
//   V6
package protocol

import (
	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// Protocol defines the interface between the Controller and a protocol
// implementation
type Protocol interface {
	// NewSession returns a new, unconnected session.  Each device owns its
	// own session so that a failing bridge only affects its own devices.
	NewSession() common.Session
	// Close closes the protocol driver, no further sessions may be created
	Close() error
}
