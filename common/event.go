package common

// EventNewDevice is emitted by a Controller when it adds a new Device
type EventNewDevice struct {
	Device Device
}

// EventExpiredDevice is emitted by a Controller when a Device is removed
type EventExpiredDevice struct {
	Device Device
}

// EventUpdateDriver is emitted when a driver value is reported upstream
type EventUpdateDriver struct {
	Address string
	Driver  DriverValue
}

// EventReportCommand is emitted when a command is reported upstream, such as
// the heartbeat
type EventReportCommand struct {
	Address string
	Command CommandName
	UOM     int
}
