// Package device implements the MiLight device nodes: the bridge lamp, the
// four zones, and the all zones group.
//
// This package is not designed to be accessed by end users, all interaction
// should occur via the Controller in the milight package.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// Node definition ids, as declared in the controller profile
const (
	NodeDefBridge = `MILIGHT_BRIDGE`
	NodeDefLight  = `MILIGHT_LIGHT`
	NodeDefGroup  = `MILIGHT_GROUP`
)

type driverSpec struct {
	id      common.DriverID
	uom     int
	initial int
}

var (
	bridgeDrivers = []driverSpec{
		{id: common.DriverStatus, uom: common.UOMOnOff, initial: common.PowerOff},
		{id: common.DriverColor, uom: common.UOMRaw, initial: 0},
		{id: common.DriverBrightness, uom: common.UOMPercent, initial: 100},
		{id: common.DriverEffect, uom: common.UOMIndex, initial: 1},
	}
	zoneDrivers = []driverSpec{
		{id: common.DriverStatus, uom: common.UOMOnOff, initial: common.PowerOff},
		{id: common.DriverColor, uom: common.UOMRaw, initial: 0},
		{id: common.DriverSaturation, uom: common.UOMPercent, initial: 0},
		{id: common.DriverBrightness, uom: common.UOMPercent, initial: 100},
		{id: common.DriverEffect, uom: common.UOMIndex, initial: 1},
		{id: common.DriverTemperature, uom: common.UOMIndex, initial: 0},
	}
)

// Config describes a device node and the bridge it talks to
type Config struct {
	Address string
	Primary string
	Name    string
	Host    string
	// Port defaults to common.DefaultPort
	Port int
	// Timeout defaults to common.DefaultSessionTimeout
	Timeout time.Duration
	// Session is owned by the device and closed with it
	Session  common.Session
	Reporter common.Reporter
	Logger   common.Logger
}

// Device is a node backed by its own bridge session
type Device struct {
	address   string
	primary   string
	name      string
	nodeDefID string
	kind      common.Kind
	zone      common.Zone
	host      string
	port      int
	timeout   time.Duration

	session      common.Session
	reporter     common.Reporter
	log          common.Logger
	capabilities capabilities
	specs        []driverSpec

	state   State
	drivers map[common.DriverID]int
	// cmdLock serialises use of the session
	cmdLock sync.Mutex
	sync.RWMutex
}

// NewBridge returns the device controlling the lamp built into the bridge
func NewBridge(cfg Config) *Device {
	d := newDevice(cfg, common.KindBridge, common.ZoneAll)
	d.nodeDefID = NodeDefBridge
	d.capabilities = bridgeCapabilities
	d.specs = bridgeDrivers
	return d
}

// NewZone returns the device controlling a single zone, 1 to 4
func NewZone(cfg Config, zone common.Zone) (*Device, error) {
	if zone == common.ZoneAll || !zone.Valid() {
		return nil, fmt.Errorf("%w: zone %d", common.ErrOutOfRange, zone)
	}
	d := newDevice(cfg, common.KindZone, zone)
	d.nodeDefID = NodeDefLight
	d.capabilities = zoneCapabilities
	d.specs = zoneDrivers
	return d, nil
}

// NewGroup returns the device controlling every zone of the bridge at once
func NewGroup(cfg Config) *Device {
	d := newDevice(cfg, common.KindGroup, common.ZoneAll)
	d.nodeDefID = NodeDefGroup
	d.capabilities = zoneCapabilities
	d.specs = zoneDrivers
	return d
}

func newDevice(cfg Config, kind common.Kind, zone common.Zone) *Device {
	d := &Device{
		address:  cfg.Address,
		primary:  cfg.Primary,
		name:     cfg.Name,
		kind:     kind,
		zone:     zone,
		host:     cfg.Host,
		port:     cfg.Port,
		timeout:  cfg.Timeout,
		session:  cfg.Session,
		reporter: cfg.Reporter,
		log:      common.LoggerOrStub(cfg.Logger),
		drivers:  make(map[common.DriverID]int),
	}
	if d.port == 0 {
		d.port = common.DefaultPort
	}
	if d.timeout == 0 {
		d.timeout = common.DefaultSessionTimeout
	}
	return d
}

func (d *Device) Address() string   { return d.address }
func (d *Device) Primary() string   { return d.primary }
func (d *Device) Name() string      { return d.name }
func (d *Device) NodeDefID() string { return d.nodeDefID }
func (d *Device) Kind() common.Kind { return d.kind }
func (d *Device) Host() string      { return d.host }
func (d *Device) Port() int         { return d.port }
func (d *Device) Zone() common.Zone { return d.zone }

// Timeout is the session timeout used on every Setup
func (d *Device) Timeout() time.Duration { return d.timeout }

// Pollable is true for every MiLight node, short polls refresh the session
func (d *Device) Pollable() bool { return true }

// Supports reports whether the device accepts the named command
func (d *Device) Supports(name common.CommandName) bool {
	if name == common.CommandQuery {
		return true
	}
	_, ok := d.capabilities[name]
	return ok
}

// State returns the connection state of the session
func (d *Device) State() State {
	d.RLock()
	defer d.RUnlock()
	return d.state
}

func (d *Device) setState(state State) {
	d.Lock()
	d.state = state
	d.Unlock()
}

// Start connects to the bridge, seeds the initial drivers and reports them
func (d *Device) Start() error {
	d.cmdLock.Lock()
	err := d.connect()
	d.cmdLock.Unlock()

	d.Lock()
	for _, spec := range d.specs {
		d.drivers[spec.id] = spec.initial
	}
	d.Unlock()
	d.reportAll()

	return err
}

// Query sets up the session again and reports every driver
func (d *Device) Query() error {
	d.cmdLock.Lock()
	err := d.connect()
	d.cmdLock.Unlock()
	d.reportAll()
	return err
}

// Execute runs cmd against the bridge.  A failed call is retried exactly once
// after setting up the session again; mirrored drivers only change once the
// bridge has acknowledged the command.
func (d *Device) Execute(cmd common.Command) error {
	if cmd.Name == common.CommandQuery {
		return d.Query()
	}

	c, ok := d.capabilities[cmd.Name]
	if !ok {
		return d.commandError(cmd.Name, common.ErrUnsupported)
	}
	value, err := c.resolve(cmd)
	if err != nil {
		d.log.Warnf("Invalid %s for %s: %v", cmd, d.name, err)
		return d.commandError(cmd.Name, err)
	}

	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()

	if d.State() == StateUninitialized {
		_ = d.connect()
	}
	d.log.Debugf("Executing %s on %s", cmd, d.name)
	if err = c.call(d.session, d.zone, value); err != nil {
		d.log.Debugf("%s on %s failed, reconnecting: %v", cmd, d.name, err)
		d.setState(StateReconnectPending)
		_ = d.connect()
		err = c.call(d.session, d.zone, value)
	}
	if err != nil {
		d.log.Warnf("Unable to %s %s", c.op, d.name)
		return d.commandError(cmd.Name, err)
	}
	d.setState(StateConnected)

	if c.driver != `` {
		d.setDriver(c.driver, value)
	}

	return nil
}

// connect must be called with cmdLock held
func (d *Device) connect() error {
	if err := d.session.Setup(d.host, d.port, d.timeout); err != nil {
		d.log.Errorf("Unable to setup MiLight %s (%s:%d): %v", d.name, d.host, d.port, err)
		return err
	}
	d.setState(StateConnected)
	return nil
}

// Drivers returns the mirrored drivers in profile order
func (d *Device) Drivers() []common.DriverValue {
	d.RLock()
	defer d.RUnlock()
	values := make([]common.DriverValue, 0, len(d.specs))
	for _, spec := range d.specs {
		values = append(values, common.DriverValue{Driver: spec.id, Value: d.drivers[spec.id], UOM: spec.uom})
	}
	return values
}

// Driver returns the mirrored value of a single driver
func (d *Device) Driver(id common.DriverID) (int, bool) {
	d.RLock()
	defer d.RUnlock()
	v, ok := d.drivers[id]
	return v, ok
}

// Close releases the bridge session
func (d *Device) Close() error {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	d.log.Debugf("Closing session of %s", d.name)
	err := d.session.Close()
	d.setState(StateUninitialized)
	return err
}

// setDriver stores value and reports it, even when unchanged
func (d *Device) setDriver(id common.DriverID, value int) {
	d.Lock()
	d.drivers[id] = value
	d.Unlock()
	d.report(common.DriverValue{Driver: id, Value: value, UOM: d.uom(id)})
}

func (d *Device) uom(id common.DriverID) int {
	for _, spec := range d.specs {
		if spec.id == id {
			return spec.uom
		}
	}
	return 0
}

func (d *Device) reportAll() {
	for _, value := range d.Drivers() {
		d.report(value)
	}
}

func (d *Device) report(value common.DriverValue) {
	if d.reporter == nil {
		return
	}
	d.reporter.ReportDriver(d.address, value)
}

func (d *Device) commandError(name common.CommandName, err error) error {
	return &common.CommandError{Address: d.address, Command: name, Err: err}
}
