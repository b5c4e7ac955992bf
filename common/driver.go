package common

// DriverID names a state value exposed to the controller
type DriverID string

const (
	// DriverStatus is the power status, 0 or 100 for lights, 0 or 1 for the
	// controller
	DriverStatus DriverID = `ST`
	// DriverColor is the raw color value
	DriverColor DriverID = `GV1`
	// DriverSaturation is the saturation percentage
	DriverSaturation DriverID = `GV2`
	// DriverBrightness is the brightness percentage
	DriverBrightness DriverID = `GV3`
	// DriverEffect is the disco mode index
	DriverEffect DriverID = `GV4`
	// DriverTemperature is the white temperature value
	DriverTemperature DriverID = `GV5`
)

// Units of measure, as defined by the controller's profile schema
const (
	UOMBoolean = 2
	UOMIndex   = 25
	UOMPercent = 51
	UOMOnOff   = 78
	UOMRaw     = 100
)

// Power status values
const (
	PowerOff = 0
	PowerOn  = 100
)

// DriverValue is a single driver reading
type DriverValue struct {
	Driver DriverID `json:"driver"`
	Value  int      `json:"value"`
	UOM    int      `json:"uom"`
}
