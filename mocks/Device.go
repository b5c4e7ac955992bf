package mocks

import "github.com/therealmysteryman/udi-milight-pg3/common"
import "github.com/stretchr/testify/mock"

type Device struct {
	mock.Mock
}

// Address provides a mock function with given fields:
func (_m *Device) Address() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Primary provides a mock function with given fields:
func (_m *Device) Primary() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Name provides a mock function with given fields:
func (_m *Device) Name() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// NodeDefID provides a mock function with given fields:
func (_m *Device) NodeDefID() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Kind provides a mock function with given fields:
func (_m *Device) Kind() common.Kind {
	ret := _m.Called()

	var r0 common.Kind
	if rf, ok := ret.Get(0).(func() common.Kind); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(common.Kind)
	}

	return r0
}

// Host provides a mock function with given fields:
func (_m *Device) Host() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Pollable provides a mock function with given fields:
func (_m *Device) Pollable() bool {
	ret := _m.Called()

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Start provides a mock function with given fields:
func (_m *Device) Start() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Execute provides a mock function with given fields: cmd
func (_m *Device) Execute(cmd common.Command) error {
	ret := _m.Called(cmd)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.Command) error); ok {
		r0 = rf(cmd)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Query provides a mock function with given fields:
func (_m *Device) Query() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Drivers provides a mock function with given fields:
func (_m *Device) Drivers() []common.DriverValue {
	ret := _m.Called()

	var r0 []common.DriverValue
	if rf, ok := ret.Get(0).(func() []common.DriverValue); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]common.DriverValue)
		}
	}

	return r0
}

// Driver provides a mock function with given fields: id
func (_m *Device) Driver(id common.DriverID) (int, bool) {
	ret := _m.Called(id)

	var r0 int
	if rf, ok := ret.Get(0).(func(common.DriverID) int); ok {
		r0 = rf(id)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 bool
	if rf, ok := ret.Get(1).(func(common.DriverID) bool); ok {
		r1 = rf(id)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// Close provides a mock function with given fields:
func (_m *Device) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
