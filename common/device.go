package common

// Kind is the variant of a device node
type Kind int

const (
	// KindBridge is the lamp built into the bridge
	KindBridge Kind = iota
	// KindZone is a single zone of lights paired with the bridge
	KindZone
	// KindGroup addresses every zone of the bridge at once
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindBridge:
		return `bridge`
	case KindZone:
		return `zone`
	case KindGroup:
		return `group`
	default:
		return `unknown`
	}
}

// Device represents a node backed by a MiLight bridge
type Device interface {
	// Address returns the node address
	Address() string
	// Primary returns the address of the parent node
	Primary() string
	// Name returns the display name
	Name() string
	// NodeDefID returns the profile node definition for this device
	NodeDefID() string
	// Kind returns the device variant
	Kind() Kind
	// Host returns the bridge host this device talks to
	Host() string
	// Pollable reports whether the device should be queried on short polls
	Pollable() bool

	// Start connects to the bridge and reports the initial drivers
	Start() error
	// Execute runs cmd against the bridge, updating drivers on success
	Execute(cmd Command) error
	// Query refreshes the session and reports every driver
	Query() error
	// Drivers returns the current mirrored drivers
	Drivers() []DriverValue
	// Driver returns the value of a single driver
	Driver(id DriverID) (int, bool)
	// Close releases the bridge session
	Close() error
}
