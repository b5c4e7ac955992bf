package common

import "time"

// Session is a control session with a single MiLight bridge.  Operations
// return a non-nil error when the bridge did not acknowledge the request.
type Session interface {
	// Setup (re)initialises the session, closing any previous one
	Setup(host string, port int, timeout time.Duration) error
	// Close releases the session
	Close() error

	TurnOn(zone Zone) error
	TurnOff(zone Zone) error
	SetColor(color Color, zone Zone) error
	SetSaturation(saturation int, zone Zone) error
	SetBrightness(brightness int, zone Zone) error
	SetTemperature(temperature Temperature, zone Zone) error
	SetDiscoMode(mode int, zone Zone) error
	SpeedUpDiscoMode(zone Zone) error
	SlowDownDiscoMode(zone Zone) error
	SetWhiteMode(zone Zone) error
	SetNightMode(zone Zone) error
	Link(zone Zone) error
	Unlink(zone Zone) error

	TurnOnBridgeLamp() error
	TurnOffBridgeLamp() error
	SetColorBridgeLamp(color Color) error
	SetBrightnessBridgeLamp(brightness int) error
	SetDiscoModeBridgeLamp(mode int) error
	SpeedUpDiscoModeBridgeLamp() error
	SlowDownDiscoModeBridgeLamp() error
	SetWhiteModeBridgeLamp() error

	// MacAddress requests the MAC address of the bridge
	MacAddress() (string, error)
}
