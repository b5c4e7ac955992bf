package milight

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/config"
	"github.com/therealmysteryman/udi-milight-pg3/device"
	"github.com/therealmysteryman/udi-milight-pg3/host"
	"github.com/therealmysteryman/udi-milight-pg3/protocol"
)

const (
	// ControllerAddress is the address of the controller node
	ControllerAddress = `controller`
	// ControllerNodeDef is the node definition of the controller node
	ControllerNodeDef = `controller`
	// ControllerName is the display name of the controller node
	ControllerName = `MiLight Controller`

	// NoticeConfig is the notice key used for configuration problems
	NoticeConfig = `cfg`
	// MissingHostNotice is shown when no bridge host is configured
	MissingHostNotice = `MiLight requires the "host" parameter to be specified.`
)

type endpoint struct {
	host     string
	port     int
	timeout  time.Duration
	allZones bool
}

// Controller owns the device nodes of every configured bridge, and handles
// the events delivered by the host.  Always use NewController() to obtain a
// Controller instance.
type Controller struct {
	version       string
	protocol      protocol.Protocol
	host          host.Interface
	log           common.Logger
	endpoints     []endpoint
	devices       map[string]common.Device
	status        int
	heartbeat     int
	subscriptions map[string]*common.Subscription
	sync.RWMutex
}

// Register subscribes the controller to the host events delivered by rt
func (c *Controller) Register(rt *host.Runtime) {
	rt.Subscribe(host.EventStart, func(host.Event) error {
		return c.Start()
	})
	rt.Subscribe(host.EventCustomParams, func(ev host.Event) error {
		return c.ParameterHandler(ev.Params)
	})
	rt.Subscribe(host.EventPoll, func(ev host.Event) error {
		return c.Poll(ev.Poll)
	})
	rt.Subscribe(host.EventCommand, func(ev host.Event) error {
		return c.HandleCommand(ev.Address, ev.Command)
	})
	rt.Subscribe(host.EventStop, func(host.Event) error {
		return c.Stop()
	})
}

// Start registers the controller node and reports it as not yet polled
func (c *Controller) Start() error {
	c.log.Infof("Started MiLight NodeServer %s", c.version)
	c.Lock()
	c.status = 0
	c.Unlock()
	if err := c.host.AddNode(c.controllerNode()); err != nil {
		return err
	}
	c.reportStatus()
	return nil
}

// ParameterHandler applies the custom parameters and runs discovery.  A
// missing host halts discovery until valid parameters are received.
func (c *Controller) ParameterHandler(params map[string]string) error {
	c.host.ClearNotices()

	endpoints, err := parseParams(params)
	if err != nil {
		var cfgErr *common.ConfigurationError
		if errors.As(err, &cfgErr) && errors.Is(err, common.ErrMissingHost) {
			c.host.SetNotice(NoticeConfig, MissingHostNotice)
		} else {
			c.host.SetNotice(NoticeConfig, fmt.Sprintf("MiLight parameter is invalid: %v", err))
		}
		c.log.Errorf("Invalid configuration: %v", err)
		return err
	}

	c.Lock()
	c.endpoints = endpoints
	c.Unlock()
	c.removeStale(endpoints)

	return c.Discover()
}

func parseParams(params map[string]string) ([]endpoint, error) {
	var hosts []string
	for _, h := range strings.Split(params[config.ParamHost], `,`) {
		if h = strings.TrimSpace(h); h != `` {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 0 {
		return nil, &common.ConfigurationError{Param: config.ParamHost, Err: common.ErrMissingHost}
	}

	port := common.DefaultPort
	if v := strings.TrimSpace(params[config.ParamPort]); v != `` {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, &common.ConfigurationError{Param: config.ParamPort, Err: err}
		}
		if p < 1 || p > 65535 {
			return nil, &common.ConfigurationError{Param: config.ParamPort, Err: common.ErrOutOfRange}
		}
		port = p
	}

	timeout := common.DefaultSessionTimeout
	if v := strings.TrimSpace(params[config.ParamTimeout]); v != `` {
		t, err := config.ParseSeconds(v)
		if err != nil {
			return nil, &common.ConfigurationError{Param: config.ParamTimeout, Err: err}
		}
		if t > 0 {
			timeout = t
		}
	}

	allZones := false
	if v := strings.TrimSpace(params[config.ParamAllZones]); v != `` {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &common.ConfigurationError{Param: config.ParamAllZones, Err: err}
		}
		allZones = b
	}

	endpoints := make([]endpoint, len(hosts))
	for i, h := range hosts {
		endpoints[i] = endpoint{host: h, port: port, timeout: timeout, allZones: allZones}
	}
	return endpoints, nil
}

// removeStale drops the devices of bridges that are no longer configured, or
// whose endpoint changed
func (c *Controller) removeStale(endpoints []endpoint) {
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		n := bridgeIndex(dev.Address())
		keep := n >= 1 && n <= len(endpoints)
		if keep {
			ep := endpoints[n-1]
			keep = dev.Host() == ep.host
			if d, ok := dev.(*device.Device); ok {
				keep = keep && d.Port() == ep.port && d.Timeout() == ep.timeout
			}
			if dev.Kind() == common.KindGroup && !ep.allZones {
				keep = false
			}
		}
		if keep {
			continue
		}
		c.log.Infof("Removing %s (%s), bridge no longer configured", dev.Name(), dev.Address())
		if err := dev.Close(); err != nil {
			c.log.Debugf("Closing %s: %v", dev.Address(), err)
		}
		if err := c.RemoveDeviceByAddress(dev.Address()); err == nil {
			c.publish(common.EventExpiredDevice{Device: dev})
		}
	}
}

func bridgeIndex(address string) int {
	var n int
	if _, err := fmt.Sscanf(address, "bridge%d", &n); err != nil {
		return 0
	}
	return n
}

// Discover adds the nodes of every configured bridge: the bridge lamp, four
// zones, and the all zones group when enabled.  Known addresses are kept
// with their session untouched.
func (c *Controller) Discover() error {
	c.RLock()
	endpoints := make([]endpoint, len(c.endpoints))
	copy(endpoints, c.endpoints)
	c.RUnlock()

	if len(endpoints) == 0 {
		c.log.Warnf("Discovery skipped, no bridge configured")
		return &common.ConfigurationError{Param: config.ParamHost, Err: common.ErrMissingHost}
	}

	var errs []error
	for i, ep := range endpoints {
		primary := fmt.Sprintf("bridge%d", i+1)
		base := device.Config{
			Host:     ep.host,
			Port:     ep.port,
			Timeout:  ep.timeout,
			Reporter: c,
			Logger:   c.log,
		}

		cfg := base
		cfg.Address, cfg.Primary, cfg.Name = primary, primary, fmt.Sprintf("Bridge%d", i+1)
		if err := c.discoverDevice(cfg, func(cfg device.Config) (*device.Device, error) {
			return device.NewBridge(cfg), nil
		}); err != nil {
			errs = append(errs, err)
		}

		for zone := common.Zone1; zone <= common.MaxZone; zone++ {
			cfg := base
			cfg.Address = fmt.Sprintf("%s_zone%d", primary, int(zone))
			cfg.Primary, cfg.Name = primary, fmt.Sprintf("Zone%d", int(zone))
			z := zone
			if err := c.discoverDevice(cfg, func(cfg device.Config) (*device.Device, error) {
				return device.NewZone(cfg, z)
			}); err != nil {
				errs = append(errs, err)
			}
		}

		if ep.allZones {
			cfg := base
			cfg.Address, cfg.Primary, cfg.Name = primary+`_all`, primary, `AllZones`
			if err := c.discoverDevice(cfg, func(cfg device.Config) (*device.Device, error) {
				return device.NewGroup(cfg), nil
			}); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

func (c *Controller) discoverDevice(cfg device.Config, build func(device.Config) (*device.Device, error)) error {
	if _, err := c.GetDeviceByAddress(cfg.Address); err == nil {
		return nil
	}

	cfg.Session = c.protocol.NewSession()
	dev, err := build(cfg)
	if err != nil {
		return err
	}
	if err := c.AddDevice(dev); err != nil {
		return err
	}
	if err := c.host.AddNode(nodeOf(dev)); err != nil {
		c.log.Errorf("Unable to add node %s: %v", dev.Address(), err)
		_ = c.RemoveDeviceByAddress(dev.Address())
		return err
	}
	c.log.Infof("Added %s %s (%s) for %s:%d", dev.Kind(), dev.Name(), dev.Address(), cfg.Host, dev.Port())
	c.publish(common.EventNewDevice{Device: dev})

	// An unreachable bridge is retried on the next command or poll
	_ = dev.Start()
	return nil
}

// Poll handles the host poll ticks: short polls refresh every device session,
// long polls send the heartbeat
func (c *Controller) Poll(pt host.PollType) error {
	if pt == host.LongPoll {
		return c.Heartbeat()
	}

	c.Lock()
	c.status = 1
	c.Unlock()
	c.reportStatus()

	devices, _ := c.GetDevices()
	for _, dev := range devices {
		if !dev.Pollable() {
			continue
		}
		if err := dev.Query(); err != nil {
			c.log.Debugf("Poll of %s failed: %v", dev.Address(), err)
		}
	}
	return nil
}

// Heartbeat alternately reports DON and DOF from the controller node,
// starting with DON
func (c *Controller) Heartbeat() error {
	c.Lock()
	cmd := common.CommandOff
	if c.heartbeat == 0 {
		cmd = common.CommandOn
		c.heartbeat = 1
	} else {
		c.heartbeat = 0
	}
	c.Unlock()

	c.log.Debugf("Heartbeat %s", cmd)
	c.publish(common.EventReportCommand{Address: ControllerAddress, Command: cmd, UOM: common.UOMBoolean})
	return c.host.ReportCommand(ControllerAddress, cmd, common.UOMBoolean)
}

// Query reports the drivers of the controller and every device, without
// contacting the bridges
func (c *Controller) Query() error {
	c.reportStatus()
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		for _, value := range dev.Drivers() {
			c.ReportDriver(dev.Address(), value)
		}
	}
	return nil
}

// HandleCommand routes cmd to the node at address.  The controller accepts
// QUERY and DISCOVER.
func (c *Controller) HandleCommand(address string, cmd common.Command) error {
	if address == ControllerAddress {
		switch cmd.Name {
		case common.CommandQuery:
			return c.Query()
		case common.CommandDiscover:
			return c.Discover()
		default:
			return &common.CommandError{Address: address, Command: cmd.Name, Err: common.ErrUnsupported}
		}
	}

	dev, err := c.GetDeviceByAddress(address)
	if err != nil {
		c.log.Warnf("Command %s for unknown node %s", cmd, address)
		return &common.CommandError{Address: address, Command: cmd.Name, Err: err}
	}
	return dev.Execute(cmd)
}

// Stop closes every bridge session
func (c *Controller) Stop() error {
	c.log.Infof("NodeServer stopping")
	return c.closeDevices()
}

// Delete is called when the node server is removed from the host, it closes
// every bridge session and forgets every device
func (c *Controller) Delete() error {
	c.log.Infof("Deleting MiLight NodeServer")
	err := c.closeDevices()
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		if c.RemoveDeviceByAddress(dev.Address()) == nil {
			c.publish(common.EventExpiredDevice{Device: dev})
		}
	}
	if perr := c.protocol.Close(); perr != nil && !errors.Is(perr, common.ErrClosed) && err == nil {
		err = perr
	}
	return err
}

func (c *Controller) closeDevices() error {
	var errs []error
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		if err := dev.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReportDriver forwards a driver value to the host and the subscribers
func (c *Controller) ReportDriver(address string, value common.DriverValue) {
	if err := c.host.SetDriver(address, value); err != nil {
		c.log.Debugf("Unable to report %s of %s: %v", value.Driver, address, err)
	}
	c.publish(common.EventUpdateDriver{Address: address, Driver: value})
}

// Status returns the controller ST driver, 1 once a short poll has run
func (c *Controller) Status() int {
	c.RLock()
	defer c.RUnlock()
	return c.status
}

func (c *Controller) reportStatus() {
	c.ReportDriver(ControllerAddress, common.DriverValue{
		Driver: common.DriverStatus,
		Value:  c.Status(),
		UOM:    common.UOMBoolean,
	})
}

func (c *Controller) controllerNode() host.Node {
	return host.Node{
		Address:   ControllerAddress,
		Primary:   ControllerAddress,
		Name:      ControllerName,
		NodeDefID: ControllerNodeDef,
		Drivers: []common.DriverValue{
			{Driver: common.DriverStatus, Value: c.Status(), UOM: common.UOMBoolean},
		},
	}
}

func nodeOf(dev common.Device) host.Node {
	return host.Node{
		Address:   dev.Address(),
		Primary:   dev.Primary(),
		Name:      dev.Name(),
		NodeDefID: dev.NodeDefID(),
		Drivers:   dev.Drivers(),
	}
}

// Nodes returns the controller node followed by every device node, ordered by
// address
func (c *Controller) Nodes() []host.Node {
	nodes := []host.Node{c.controllerNode()}
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		nodes = append(nodes, nodeOf(dev))
	}
	return nodes
}

// AddDevice adds dev to the controller's known devices.  Returns
// common.ErrDuplicate if the address is already known.
func (c *Controller) AddDevice(dev common.Device) error {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.devices[dev.Address()]; ok {
		return common.ErrDuplicate
	}
	c.devices[dev.Address()] = dev
	return nil
}

// RemoveDeviceByAddress removes a device from the controller's known devices,
// or returns common.ErrNotFound if the device is not known.
func (c *Controller) RemoveDeviceByAddress(address string) error {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.devices[address]; !ok {
		return common.ErrNotFound
	}
	delete(c.devices, address)
	return nil
}

// GetDevices returns a slice of all devices known to the controller ordered by
// address, or common.ErrNotFound if no devices are currently known.
func (c *Controller) GetDevices() ([]common.Device, error) {
	c.RLock()
	devices := make([]common.Device, 0, len(c.devices))
	for _, dev := range c.devices {
		devices = append(devices, dev)
	}
	c.RUnlock()
	if len(devices) == 0 {
		return devices, common.ErrNotFound
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Address() < devices[j].Address()
	})
	return devices, nil
}

// GetDeviceByAddress looks up a device by its address, or returns
// common.ErrNotFound.
func (c *Controller) GetDeviceByAddress(address string) (common.Device, error) {
	c.RLock()
	defer c.RUnlock()
	dev, ok := c.devices[address]
	if !ok {
		return nil, common.ErrNotFound
	}
	return dev, nil
}

// GetDeviceByName looks up a device by its display name.  Zone names repeat
// across bridges, the device with the lowest address wins.
func (c *Controller) GetDeviceByName(name string) (common.Device, error) {
	devices, _ := c.GetDevices()
	for _, dev := range devices {
		if dev.Name() == name {
			return dev, nil
		}
	}
	return nil, common.ErrNotFound
}

// NewSubscription returns a *common.Subscription for receiving events from the
// controller.
func (c *Controller) NewSubscription() (*common.Subscription, error) {
	sub := common.NewSubscription(c)
	c.Lock()
	c.subscriptions[sub.ID()] = sub
	c.Unlock()
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of subscriptions.
func (c *Controller) CloseSubscription(sub *common.Subscription) error {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.subscriptions[sub.ID()]; !ok {
		return common.ErrNotFound
	}
	delete(c.subscriptions, sub.ID())
	return nil
}

// Pushes an event to subscribers
func (c *Controller) publish(event interface{}) {
	c.RLock()
	subs := make([]*common.Subscription, 0, len(c.subscriptions))
	for _, sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	c.RUnlock()

	for _, sub := range subs {
		if err := sub.Write(event); err != nil {
			c.log.Debugf("Dropped %T for subscription %s: %v", event, sub.ID(), err)
		}
	}
}
