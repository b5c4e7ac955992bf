// Package mqtt implements a host adapter over an MQTT broker.
//
// Node definitions, driver values and notices are published retained under a
// topic prefix, reported commands are published as they happen.  Commands are
// received on <prefix>/command/<address>/<COMMAND>, with an optional integer
// value as the payload.
package mqtt

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/host"
)

// DefaultPrefix is the topic prefix used when none is configured
const DefaultPrefix = `milight`

const qos = 1

// Poster accepts events for delivery to the controller
type Poster interface {
	// TryPost must not block, it runs on the client's message router
	TryPost(ev host.Event) error
}

// Host publishes everything the controller reports to an MQTT broker
type Host struct {
	client  Client
	prefix  string
	notices map[string]struct{}
	log     common.Logger
	sync.Mutex
}

type report struct {
	Command common.CommandName `json:"command"`
	UOM     int                `json:"uom"`
}

// New returns a Host publishing under prefix
func New(client Client, prefix string, logger common.Logger) *Host {
	if prefix == `` {
		prefix = DefaultPrefix
	}
	return &Host{
		client:  client,
		prefix:  strings.TrimSuffix(prefix, `/`),
		notices: make(map[string]struct{}),
		log:     common.LoggerOrStub(logger),
	}
}

// Listen subscribes to the command topics and posts every command received to
// poster
func (h *Host) Listen(poster Poster) error {
	return h.client.Subscribe(h.topic(`command`, `+`, `+`), qos, func(topic string, payload []byte) {
		ev, err := h.parseCommand(topic, payload)
		if err != nil {
			h.log.Warnf("Ignoring command on %s: %v", topic, err)
			return
		}
		if err := poster.TryPost(ev); err != nil {
			h.log.Warnf("Dropping %s for %s: %v", ev.Command, ev.Address, err)
		}
	})
}

func (h *Host) parseCommand(topic string, payload []byte) (host.Event, error) {
	parts := strings.Split(strings.TrimPrefix(topic, h.prefix+`/command/`), `/`)
	if len(parts) != 2 || parts[0] == `` || parts[1] == `` {
		return host.Event{}, common.ErrNotFound
	}
	cmd := common.NewCommand(common.CommandName(strings.ToUpper(parts[1])))
	if value := strings.TrimSpace(string(payload)); value != `` {
		v, err := strconv.Atoi(value)
		if err != nil {
			return host.Event{}, err
		}
		cmd.Value = &v
	}
	return host.Event{Type: host.EventCommand, Address: parts[0], Command: cmd}, nil
}

func (h *Host) AddNode(node host.Node) error {
	return h.publishJSON(h.topic(`node`, node.Address), node, true)
}

func (h *Host) SetDriver(address string, value common.DriverValue) error {
	return h.publishJSON(h.topic(`driver`, address, string(value.Driver)), value, true)
}

func (h *Host) ReportCommand(address string, command common.CommandName, uom int) error {
	return h.publishJSON(h.topic(`report`, address), report{Command: command, UOM: uom}, false)
}

func (h *Host) SetNotice(key, text string) {
	h.Lock()
	h.notices[key] = struct{}{}
	h.Unlock()
	if err := h.client.Publish(h.topic(`notice`, key), []byte(text), qos, true); err != nil {
		h.log.Errorf("Unable to publish notice %s: %v", key, err)
	}
}

// ClearNotices clears the retained message of every notice set so far
func (h *Host) ClearNotices() {
	h.Lock()
	keys := make([]string, 0, len(h.notices))
	for key := range h.notices {
		keys = append(keys, key)
	}
	h.notices = make(map[string]struct{})
	h.Unlock()
	for _, key := range keys {
		if err := h.client.Publish(h.topic(`notice`, key), nil, qos, true); err != nil {
			h.log.Errorf("Unable to clear notice %s: %v", key, err)
		}
	}
}

// Close disconnects from the broker
func (h *Host) Close() error {
	h.client.Disconnect()
	return nil
}

func (h *Host) publishJSON(topic string, v interface{}, retained bool) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return h.client.Publish(topic, payload, qos, retained)
}

func (h *Host) topic(parts ...string) string {
	return h.prefix + `/` + strings.Join(parts, `/`)
}
