package mocks

import "github.com/therealmysteryman/udi-milight-pg3/common"
import "github.com/therealmysteryman/udi-milight-pg3/host"
import "github.com/stretchr/testify/mock"

type Host struct {
	mock.Mock
}

// AddNode provides a mock function with given fields: node
func (_m *Host) AddNode(node host.Node) error {
	ret := _m.Called(node)

	var r0 error
	if rf, ok := ret.Get(0).(func(host.Node) error); ok {
		r0 = rf(node)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetDriver provides a mock function with given fields: address, value
func (_m *Host) SetDriver(address string, value common.DriverValue) error {
	ret := _m.Called(address, value)

	var r0 error
	if rf, ok := ret.Get(0).(func(string, common.DriverValue) error); ok {
		r0 = rf(address, value)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ReportCommand provides a mock function with given fields: address, command, uom
func (_m *Host) ReportCommand(address string, command common.CommandName, uom int) error {
	ret := _m.Called(address, command, uom)

	var r0 error
	if rf, ok := ret.Get(0).(func(string, common.CommandName, int) error); ok {
		r0 = rf(address, command, uom)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetNotice provides a mock function with given fields: key, text
func (_m *Host) SetNotice(key string, text string) {
	_m.Called(key, text)
}

// ClearNotices provides a mock function with given fields:
func (_m *Host) ClearNotices() {
	_m.Called()
}
