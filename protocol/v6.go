package protocol

import (
	"sync"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/protocol/v6/bridge"
)

// V6 implements the MiLight WiFi bridge protocol version 6.
type V6 struct {
	// Logger receives the session debug output, may be nil
	Logger   common.Logger
	sessions []*bridge.Session
	closed   bool
	sync.Mutex
}

// NewSession returns a new, unconnected bridge session
func (p *V6) NewSession() common.Session {
	s := bridge.New(p.Logger)
	p.Lock()
	p.sessions = append(p.sessions, s)
	p.Unlock()
	return s
}

// Close closes every session created by this protocol instance
func (p *V6) Close() error {
	p.Lock()
	defer p.Unlock()
	if p.closed {
		return common.ErrClosed
	}
	var firstErr error
	for _, s := range p.sessions {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.sessions = nil
	p.closed = true
	return firstErr
}
