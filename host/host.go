// Package host defines the boundary between the MiLight controller and the
// home automation host: the calls the controller makes into the host, and the
// events the host delivers to the controller.
package host

import (
	"fmt"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// Node is a node definition as registered with the host
type Node struct {
	Address   string               `json:"address"`
	Primary   string               `json:"primary"`
	Name      string               `json:"name"`
	NodeDefID string               `json:"nodeDefId"`
	Drivers   []common.DriverValue `json:"drivers"`
}

// Interface is implemented by host adapters
type Interface interface {
	// AddNode registers a node, adding an existing address is not an error
	AddNode(node Node) error
	// SetDriver reports a driver value for the node at address
	SetDriver(address string, value common.DriverValue) error
	// ReportCommand reports a command issued by the node at address, used by
	// the controller heartbeat
	ReportCommand(address string, command common.CommandName, uom int) error
	// SetNotice shows a notice to the user under key
	SetNotice(key, text string)
	// ClearNotices removes every notice
	ClearNotices()
}

// EventType enumerates the events delivered by the host
type EventType int

const (
	// EventStart is delivered once, before any other event
	EventStart EventType = iota
	// EventCustomParams carries the custom parameters in Params
	EventCustomParams
	// EventPoll carries the poll type in Poll
	EventPoll
	// EventCommand carries a command for the node at Address
	EventCommand
	// EventStop is delivered last
	EventStop
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return `start`
	case EventCustomParams:
		return `custom params`
	case EventPoll:
		return `poll`
	case EventCommand:
		return `command`
	case EventStop:
		return `stop`
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// PollType is the kind of poll delivered with EventPoll
type PollType int

const (
	// ShortPoll is delivered every short poll interval
	ShortPoll PollType = iota
	// LongPoll is delivered every long poll interval
	LongPoll
)

func (p PollType) String() string {
	if p == LongPoll {
		return `longPoll`
	}
	return `shortPoll`
}

// Event is delivered by the Runtime to the registered handlers
type Event struct {
	Type    EventType
	Params  map[string]string
	Poll    PollType
	Address string
	Command common.Command
}

// Handler handles a single event
type Handler func(Event) error
