package common

// Reporter receives the driver values of a device as they are reported
// upstream
type Reporter interface {
	ReportDriver(address string, value DriverValue)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(address string, value DriverValue)

// ReportDriver calls f(address, value)
func (f ReporterFunc) ReportDriver(address string, value DriverValue) {
	f(address, value)
}
