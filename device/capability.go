package device

import (
	"fmt"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// resolver translates the command value into the value sent to the bridge
// and mirrored in the driver
type resolver func(cmd common.Command) (int, error)

type sessionCall func(s common.Session, zone common.Zone, value int) error

type capability struct {
	// op is used in log messages
	op string
	// driver is updated with the resolved value on success, empty when the
	// command changes no mirrored state
	driver  common.DriverID
	resolve resolver
	call    sessionCall
}

type capabilities map[common.CommandName]capability

func fixed(value int) resolver {
	return func(common.Command) (int, error) { return value, nil }
}

func none(common.Command) (int, error) { return 0, nil }

func between(lo, hi int) resolver {
	return func(cmd common.Command) (int, error) {
		if cmd.Value == nil {
			return 0, common.ErrMissingValue
		}
		v := *cmd.Value
		if v < lo || v > hi {
			return 0, fmt.Errorf("%w: %d not in %d..%d", common.ErrOutOfRange, v, lo, hi)
		}
		return v, nil
	}
}

func paletteColor(cmd common.Command) (int, error) {
	if cmd.Value == nil {
		return 0, common.ErrMissingValue
	}
	c, err := common.PaletteColor(*cmd.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: color index %d", err, *cmd.Value)
	}
	return int(c), nil
}

func paletteTemperature(cmd common.Command) (int, error) {
	if cmd.Value == nil {
		return 0, common.ErrMissingValue
	}
	t, err := common.PaletteTemperature(*cmd.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: temperature index %d", err, *cmd.Value)
	}
	return int(t), nil
}

var bridgeCapabilities = capabilities{
	common.CommandOn: {
		op: `Turn ON`, driver: common.DriverStatus, resolve: fixed(common.PowerOn),
		call: func(s common.Session, _ common.Zone, _ int) error { return s.TurnOnBridgeLamp() },
	},
	common.CommandOff: {
		op: `Turn OFF`, driver: common.DriverStatus, resolve: fixed(common.PowerOff),
		call: func(s common.Session, _ common.Zone, _ int) error { return s.TurnOffBridgeLamp() },
	},
	common.CommandColorID: {
		op: `set color`, driver: common.DriverColor, resolve: between(0, 255),
		call: func(s common.Session, _ common.Zone, v int) error { return s.SetColorBridgeLamp(common.Color(v)) },
	},
	common.CommandColor: {
		op: `set color`, driver: common.DriverColor, resolve: paletteColor,
		call: func(s common.Session, _ common.Zone, v int) error { return s.SetColorBridgeLamp(common.Color(v)) },
	},
	common.CommandBrightness: {
		op: `set brightness`, driver: common.DriverBrightness, resolve: between(0, 100),
		call: func(s common.Session, _ common.Zone, v int) error { return s.SetBrightnessBridgeLamp(v) },
	},
	common.CommandEffect: {
		op: `set effect`, driver: common.DriverEffect, resolve: between(1, 9),
		call: func(s common.Session, _ common.Zone, v int) error { return s.SetDiscoModeBridgeLamp(v) },
	},
	common.CommandEffectFaster: {
		op: `speed up effect`, resolve: none,
		call: func(s common.Session, _ common.Zone, _ int) error { return s.SpeedUpDiscoModeBridgeLamp() },
	},
	common.CommandEffectSlower: {
		op: `slow down effect`, resolve: none,
		call: func(s common.Session, _ common.Zone, _ int) error { return s.SlowDownDiscoModeBridgeLamp() },
	},
	common.CommandWhiteMode: {
		op: `set white mode`, resolve: none,
		call: func(s common.Session, _ common.Zone, _ int) error { return s.SetWhiteModeBridgeLamp() },
	},
}

// zoneCapabilities serves both single zones and the all zones group, the
// zone is carried by the device
var zoneCapabilities = capabilities{
	common.CommandOn: {
		op: `Turn ON`, driver: common.DriverStatus, resolve: fixed(common.PowerOn),
		call: func(s common.Session, z common.Zone, _ int) error { return s.TurnOn(z) },
	},
	common.CommandOff: {
		op: `Turn OFF`, driver: common.DriverStatus, resolve: fixed(common.PowerOff),
		call: func(s common.Session, z common.Zone, _ int) error { return s.TurnOff(z) },
	},
	common.CommandColorID: {
		op: `set color`, driver: common.DriverColor, resolve: between(0, 255),
		call: func(s common.Session, z common.Zone, v int) error { return s.SetColor(common.Color(v), z) },
	},
	common.CommandColor: {
		op: `set color`, driver: common.DriverColor, resolve: paletteColor,
		call: func(s common.Session, z common.Zone, v int) error { return s.SetColor(common.Color(v), z) },
	},
	common.CommandSaturation: {
		op: `set saturation`, driver: common.DriverSaturation, resolve: between(0, 100),
		call: func(s common.Session, z common.Zone, v int) error { return s.SetSaturation(v, z) },
	},
	common.CommandBrightness: {
		op: `set brightness`, driver: common.DriverBrightness, resolve: between(0, 100),
		call: func(s common.Session, z common.Zone, v int) error { return s.SetBrightness(v, z) },
	},
	common.CommandTemperature: {
		op: `set temperature`, driver: common.DriverTemperature, resolve: paletteTemperature,
		call: func(s common.Session, z common.Zone, v int) error { return s.SetTemperature(common.Temperature(v), z) },
	},
	common.CommandEffect: {
		op: `set effect`, driver: common.DriverEffect, resolve: between(1, 9),
		call: func(s common.Session, z common.Zone, v int) error { return s.SetDiscoMode(v, z) },
	},
	common.CommandEffectFaster: {
		op: `speed up effect`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.SpeedUpDiscoMode(z) },
	},
	common.CommandEffectSlower: {
		op: `slow down effect`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.SlowDownDiscoMode(z) },
	},
	common.CommandWhiteMode: {
		op: `set white mode`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.SetWhiteMode(z) },
	},
	common.CommandNightMode: {
		op: `set night mode`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.SetNightMode(z) },
	},
	common.CommandLink: {
		op: `link`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.Link(z) },
	},
	common.CommandUnlink: {
		op: `unlink`, resolve: none,
		call: func(s common.Session, z common.Zone, _ int) error { return s.Unlink(z) },
	},
}
