// Copyright 2019 therealmysteryman
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file

// Package milight provides a node server bridging MiLight (LimitlessLED v6)
// WiFi bridges to a home automation host.
//
// Also included in cmd/milight is a small CLI utility that runs the node
// server, or sends one-shot commands to a bridge on the LAN.
package milight

import (
	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/host"
	"github.com/therealmysteryman/udi-milight-pg3/protocol"
)

const (
	// VERSION of this node server
	VERSION = `3.1.0`
)

// Config holds the collaborators of a Controller
type Config struct {
	// Logger defaults to common.StubLogger, which does no logging at all
	Logger common.Logger
	// Version is logged on start, defaults to VERSION
	Version string
	// Protocol creates the bridge sessions, defaults to protocol.V6
	Protocol protocol.Protocol
	// Host receives nodes, drivers and notices, defaults to a host.Memory
	Host host.Interface
}

// NewController returns a pointer to a new Controller.  No bridge is contacted
// until the custom parameters have been handled.
func NewController(cfg Config) *Controller {
	log := common.Prefixed(cfg.Logger, `milight`)
	if cfg.Version == `` {
		cfg.Version = VERSION
	}
	if cfg.Protocol == nil {
		cfg.Protocol = &protocol.V6{Logger: log}
	}
	if cfg.Host == nil {
		cfg.Host = host.NewMemory(log)
	}
	return &Controller{
		version:       cfg.Version,
		protocol:      cfg.Protocol,
		host:          cfg.Host,
		log:           log,
		devices:       make(map[string]common.Device),
		subscriptions: make(map[string]*common.Subscription),
	}
}
