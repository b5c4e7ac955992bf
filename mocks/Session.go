package mocks

import "github.com/therealmysteryman/udi-milight-pg3/common"
import "github.com/stretchr/testify/mock"

import "time"

type Session struct {
	mock.Mock
}

// Setup provides a mock function with given fields: host, port, timeout
func (_m *Session) Setup(host string, port int, timeout time.Duration) error {
	ret := _m.Called(host, port, timeout)

	var r0 error
	if rf, ok := ret.Get(0).(func(string, int, time.Duration) error); ok {
		r0 = rf(host, port, timeout)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with given fields:
func (_m *Session) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TurnOn provides a mock function with given fields: zone
func (_m *Session) TurnOn(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TurnOff provides a mock function with given fields: zone
func (_m *Session) TurnOff(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetColor provides a mock function with given fields: color, zone
func (_m *Session) SetColor(color common.Color, zone common.Zone) error {
	ret := _m.Called(color, zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Color, common.Zone) error); ok {
		r0 = rf(color, zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetSaturation provides a mock function with given fields: saturation, zone
func (_m *Session) SetSaturation(saturation int, zone common.Zone) error {
	ret := _m.Called(saturation, zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(int, common.Zone) error); ok {
		r0 = rf(saturation, zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetBrightness provides a mock function with given fields: brightness, zone
func (_m *Session) SetBrightness(brightness int, zone common.Zone) error {
	ret := _m.Called(brightness, zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(int, common.Zone) error); ok {
		r0 = rf(brightness, zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetTemperature provides a mock function with given fields: temperature, zone
func (_m *Session) SetTemperature(temperature common.Temperature, zone common.Zone) error {
	ret := _m.Called(temperature, zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Temperature, common.Zone) error); ok {
		r0 = rf(temperature, zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetDiscoMode provides a mock function with given fields: mode, zone
func (_m *Session) SetDiscoMode(mode int, zone common.Zone) error {
	ret := _m.Called(mode, zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(int, common.Zone) error); ok {
		r0 = rf(mode, zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SpeedUpDiscoMode provides a mock function with given fields: zone
func (_m *Session) SpeedUpDiscoMode(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SlowDownDiscoMode provides a mock function with given fields: zone
func (_m *Session) SlowDownDiscoMode(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetWhiteMode provides a mock function with given fields: zone
func (_m *Session) SetWhiteMode(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetNightMode provides a mock function with given fields: zone
func (_m *Session) SetNightMode(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Link provides a mock function with given fields: zone
func (_m *Session) Link(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Unlink provides a mock function with given fields: zone
func (_m *Session) Unlink(zone common.Zone) error {
	ret := _m.Called(zone)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Zone) error); ok {
		r0 = rf(zone)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TurnOnBridgeLamp provides a mock function with given fields:
func (_m *Session) TurnOnBridgeLamp() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TurnOffBridgeLamp provides a mock function with given fields:
func (_m *Session) TurnOffBridgeLamp() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetColorBridgeLamp provides a mock function with given fields: color
func (_m *Session) SetColorBridgeLamp(color common.Color) error {
	ret := _m.Called(color)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Color) error); ok {
		r0 = rf(color)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetBrightnessBridgeLamp provides a mock function with given fields: brightness
func (_m *Session) SetBrightnessBridgeLamp(brightness int) error {
	ret := _m.Called(brightness)

	var r0 error
	if rf, ok := ret.Get(0).(func(int) error); ok {
		r0 = rf(brightness)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetDiscoModeBridgeLamp provides a mock function with given fields: mode
func (_m *Session) SetDiscoModeBridgeLamp(mode int) error {
	ret := _m.Called(mode)

	var r0 error
	if rf, ok := ret.Get(0).(func(int) error); ok {
		r0 = rf(mode)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SpeedUpDiscoModeBridgeLamp provides a mock function with given fields:
func (_m *Session) SpeedUpDiscoModeBridgeLamp() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SlowDownDiscoModeBridgeLamp provides a mock function with given fields:
func (_m *Session) SlowDownDiscoModeBridgeLamp() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetWhiteModeBridgeLamp provides a mock function with given fields:
func (_m *Session) SetWhiteModeBridgeLamp() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MacAddress provides a mock function with given fields:
func (_m *Session) MacAddress() (string, error) {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func() error); ok {
		r1 = rf()
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
