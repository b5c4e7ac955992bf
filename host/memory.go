package host

import (
	"sync"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// ReportedCommand is a command reported by a node
type ReportedCommand struct {
	Address string             `json:"address"`
	Command common.CommandName `json:"command"`
	UOM     int                `json:"uom"`
}

// Memory is an in-process host that records everything reported to it
type Memory struct {
	order    []string
	nodes    map[string]Node
	drivers  map[string]map[common.DriverID]common.DriverValue
	commands []ReportedCommand
	notices  map[string]string
	log      common.Logger
	sync.RWMutex
}

// NewMemory returns an empty Memory host
func NewMemory(logger common.Logger) *Memory {
	return &Memory{
		nodes:   make(map[string]Node),
		drivers: make(map[string]map[common.DriverID]common.DriverValue),
		notices: make(map[string]string),
		log:     common.LoggerOrStub(logger),
	}
}

func (m *Memory) AddNode(node Node) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.nodes[node.Address]; !ok {
		m.order = append(m.order, node.Address)
	}
	m.nodes[node.Address] = node
	if _, ok := m.drivers[node.Address]; !ok {
		m.drivers[node.Address] = make(map[common.DriverID]common.DriverValue)
	}
	for _, v := range node.Drivers {
		m.drivers[node.Address][v.Driver] = v
	}
	m.log.Infof("Added node %s (%s) %q", node.Address, node.NodeDefID, node.Name)
	return nil
}

func (m *Memory) SetDriver(address string, value common.DriverValue) error {
	m.Lock()
	defer m.Unlock()
	drivers, ok := m.drivers[address]
	if !ok {
		return common.ErrNotFound
	}
	drivers[value.Driver] = value
	m.log.Debugf("%s %s=%d (uom %d)", address, value.Driver, value.Value, value.UOM)
	return nil
}

func (m *Memory) ReportCommand(address string, command common.CommandName, uom int) error {
	m.Lock()
	defer m.Unlock()
	m.commands = append(m.commands, ReportedCommand{Address: address, Command: command, UOM: uom})
	m.log.Debugf("%s reported %s", address, command)
	return nil
}

func (m *Memory) SetNotice(key, text string) {
	m.Lock()
	m.notices[key] = text
	m.Unlock()
	m.log.Warnf("Notice %s: %s", key, text)
}

func (m *Memory) ClearNotices() {
	m.Lock()
	m.notices = make(map[string]string)
	m.Unlock()
}

// Nodes returns the registered nodes in the order they were added
func (m *Memory) Nodes() []Node {
	m.RLock()
	defer m.RUnlock()
	nodes := make([]Node, 0, len(m.order))
	for _, address := range m.order {
		nodes = append(nodes, m.nodes[address])
	}
	return nodes
}

// Driver returns the last value reported for a driver
func (m *Memory) Driver(address string, id common.DriverID) (common.DriverValue, bool) {
	m.RLock()
	defer m.RUnlock()
	v, ok := m.drivers[address][id]
	return v, ok
}

// Commands returns the reported commands, oldest first
func (m *Memory) Commands() []ReportedCommand {
	m.RLock()
	defer m.RUnlock()
	out := make([]ReportedCommand, len(m.commands))
	copy(out, m.commands)
	return out
}

// Notices returns a copy of the current notices
func (m *Memory) Notices() map[string]string {
	m.RLock()
	defer m.RUnlock()
	out := make(map[string]string, len(m.notices))
	for k, v := range m.notices {
		out[k] = v
	}
	return out
}
