// Package packet implements the frames of the MiLight v6 (LimitlessLED WiFi
// Bridge v6.0) UDP protocol.
//
// This package is not designed to be used directly by end users, all
// interaction should occur via a Session from the bridge package.
package packet

import (
	"errors"
	"fmt"
)

const (
	// CommandSize is the length of a command payload
	CommandSize = 9
	// SessionResponseSize is the length of a valid start session response
	SessionResponseSize = 22
	// AckSize is the length of a valid request acknowledgement
	AckSize = 8
	// BridgeLampZone is the zone byte used for bridge lamp commands
	BridgeLampZone = 0x01
	// MaxDiscoMode is the highest disco mode supported by the bridge
	MaxDiscoMode = 9
)

var (
	// ErrInvalidResponse the bridge response could not be decoded
	ErrInvalidResponse = errors.New(`invalid response`)
	// ErrInvalidZone the zone is not addressable
	ErrInvalidZone = errors.New(`invalid zone`)
)

// Command is a 9-byte command payload
type Command [CommandSize]byte

var startSession = []byte{
	0x20, 0x00, 0x00, 0x00, 0x16, 0x02, 0x62, 0x3A, 0xD5, 0xED, 0xA3, 0x01, 0xAE,
	0x08, 0x2D, 0x46, 0x61, 0x41, 0xA7, 0xF6, 0xDC, 0xAF, 0xD3, 0xE6, 0x00, 0x00, 0x1E,
}

// Fixed command payloads
var (
	On            = Command{0x31, 0x00, 0x00, 0x08, 0x04, 0x01, 0x00, 0x00, 0x00}
	Off           = Command{0x31, 0x00, 0x00, 0x08, 0x04, 0x02, 0x00, 0x00, 0x00}
	NightMode     = Command{0x31, 0x00, 0x00, 0x08, 0x04, 0x05, 0x00, 0x00, 0x00}
	WhiteMode     = Command{0x31, 0x00, 0x00, 0x08, 0x05, 0x64, 0x00, 0x00, 0x00}
	DiscoSpeedUp  = Command{0x31, 0x00, 0x00, 0x08, 0x04, 0x03, 0x00, 0x00, 0x00}
	DiscoSlowDown = Command{0x31, 0x00, 0x00, 0x08, 0x04, 0x04, 0x00, 0x00, 0x00}
	Link          = Command{0x3D, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00}
	Unlink        = Command{0x3E, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00}
	LampOn        = Command{0x31, 0x00, 0x00, 0x00, 0x03, 0x03, 0x00, 0x00, 0x00}
	LampOff       = Command{0x31, 0x00, 0x00, 0x00, 0x03, 0x04, 0x00, 0x00, 0x00}
	LampWhiteMode = Command{0x31, 0x00, 0x00, 0x00, 0x03, 0x05, 0x00, 0x00, 0x00}
	LampDiscoUp   = Command{0x31, 0x00, 0x00, 0x00, 0x03, 0x02, 0x00, 0x00, 0x00}
	LampDiscoDown = Command{0x31, 0x00, 0x00, 0x00, 0x03, 0x01, 0x00, 0x00, 0x00}
)

// StartSession returns the start session request frame
func StartSession() []byte {
	b := make([]byte, len(startSession))
	copy(b, startSession)
	return b
}

// Color returns the set color payload for a zone
func Color(color uint8) Command {
	return Command{0x31, 0x00, 0x00, 0x08, 0x01, color, color, color, color}
}

// LampColor returns the set color payload for the bridge lamp
func LampColor(color uint8) Command {
	return Command{0x31, 0x00, 0x00, 0x00, 0x01, color, color, color, color}
}

// DiscoMode returns the set disco mode payload for a zone, mode is clamped to
// 1..9
func DiscoMode(mode int) Command {
	return Command{0x31, 0x00, 0x00, 0x08, 0x06, clampDisco(mode), 0x00, 0x00, 0x00}
}

// LampDiscoMode returns the set disco mode payload for the bridge lamp, mode
// is clamped to 1..9
func LampDiscoMode(mode int) Command {
	return Command{0x31, 0x00, 0x00, 0x00, 0x04, clampDisco(mode), 0x00, 0x00, 0x00}
}

// Brightness returns the set brightness payload for a zone, clamped to 0..100
func Brightness(percent int) Command {
	return Command{0x31, 0x00, 0x00, 0x08, 0x03, clampPercent(percent), 0x00, 0x00, 0x00}
}

// LampBrightness returns the set brightness payload for the bridge lamp,
// clamped to 0..100
func LampBrightness(percent int) Command {
	return Command{0x31, 0x00, 0x00, 0x00, 0x02, clampPercent(percent), 0x00, 0x00, 0x00}
}

// Saturation returns the set saturation payload for a zone, clamped to 0..100
func Saturation(percent int) Command {
	return Command{0x31, 0x00, 0x00, 0x08, 0x02, clampPercent(percent), 0x00, 0x00, 0x00}
}

// Temperature returns the set temperature payload for a zone, clamped to
// 0..100
func Temperature(percent int) Command {
	return Command{0x31, 0x00, 0x00, 0x08, 0x05, clampPercent(percent), 0x00, 0x00, 0x00}
}

// Checksum is the low byte of the sum of the command bytes and the zone
func Checksum(cmd Command, zone uint8) uint8 {
	var sum int
	for _, b := range cmd {
		sum += int(b)
	}
	sum += int(zone)
	return uint8(sum & 0xFF)
}

// Request builds the frame sending cmd to zone within the given session
func Request(sessionID1, sessionID2, sequence uint8, cmd Command, zone uint8) ([]byte, error) {
	if zone > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}
	b := make([]byte, 0, 10+CommandSize+3)
	b = append(b, 0x80, 0x00, 0x00, 0x00, 0x11, sessionID1, sessionID2, 0x00, sequence, 0x00)
	b = append(b, cmd[:]...)
	b = append(b, zone, 0x00, Checksum(cmd, zone))
	return b, nil
}

// SessionResponse is the bridge's answer to a start session request
type SessionResponse struct {
	MAC        string
	SessionID1 uint8
	SessionID2 uint8
}

// DecodeSessionResponse parses a start session response
func DecodeSessionResponse(b []byte) (SessionResponse, error) {
	if len(b) != SessionResponseSize {
		return SessionResponse{}, fmt.Errorf("%w: session response of %d bytes", ErrInvalidResponse, len(b))
	}
	return SessionResponse{
		MAC:        fmt.Sprintf("%x:%x:%x:%x:%x:%x", b[7], b[8], b[9], b[10], b[11], b[12]),
		SessionID1: b[19],
		SessionID2: b[20],
	}, nil
}

// IsAck reports whether b acknowledges the request with the given sequence
func IsAck(b []byte, sequence uint8) bool {
	return len(b) == AckSize && b[6] == sequence
}

func clampPercent(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}

func clampDisco(v int) uint8 {
	if v < 1 {
		return 1
	}
	if v > MaxDiscoMode {
		return MaxDiscoMode
	}
	return uint8(v)
}
