package mocks

import "github.com/therealmysteryman/udi-milight-pg3/common"
import "github.com/stretchr/testify/mock"

type Protocol struct {
	mock.Mock
}

// NewSession provides a mock function with given fields:
func (_m *Protocol) NewSession() common.Session {
	ret := _m.Called()

	var r0 common.Session
	if rf, ok := ret.Get(0).(func() common.Session); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(common.Session)
		}
	}

	return r0
}

// Close provides a mock function with given fields:
func (_m *Protocol) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
