// Package bridge implements a control session with a MiLight v6 WiFi bridge.
//
// This package is not designed to be accessed by end users, all interaction
// should occur via the Controller in the milight package.
package bridge

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/protocol/v6/packet"
)

type udpConn interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
	ReadFromUDP(b []byte) (int, *net.UDPAddr, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

var listenUDP = func(network string, laddr *net.UDPAddr) (udpConn, error) {
	return net.ListenUDP(network, laddr)
}

var resolveUDPAddr = net.ResolveUDPAddr

// Session talks to a single bridge.  Every request opens a fresh bridge
// session, so the only state kept between requests is the socket and the
// sequence counter.
type Session struct {
	host     string
	port     int
	timeout  time.Duration
	addr     *net.UDPAddr
	conn     udpConn
	sequence uint8
	log      common.Logger
	sync.Mutex
}

// New returns an unconnected Session, call Setup before use
func New(logger common.Logger) *Session {
	return &Session{log: common.LoggerOrStub(logger)}
}

// Setup closes any previous socket and opens a new one towards host:port
func (s *Session) Setup(host string, port int, timeout time.Duration) error {
	s.Lock()
	defer s.Unlock()

	s.closeConn()
	if timeout <= 0 {
		timeout = common.DefaultSessionTimeout
	}
	s.host, s.port, s.timeout = host, port, timeout
	s.sequence = 0

	addr, err := resolveUDPAddr(`udp4`, net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return &common.ConnectionError{Host: host, Port: port, Err: err}
	}
	conn, err := listenUDP(`udp4`, nil)
	if err != nil {
		return &common.ConnectionError{Host: host, Port: port, Err: err}
	}
	s.addr = addr
	s.conn = conn
	s.log.Debugf("Session set up with %s", addr)

	return nil
}

// Close releases the socket
func (s *Session) Close() error {
	s.Lock()
	defer s.Unlock()
	return s.closeConn()
}

func (s *Session) closeConn() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// MacAddress requests the MAC address of the bridge
func (s *Session) MacAddress() (string, error) {
	s.Lock()
	defer s.Unlock()
	if s.conn == nil {
		return ``, common.ErrNotConnected
	}
	resp, err := s.startSession()
	if err != nil {
		return ``, err
	}
	return resp.MAC, nil
}

func (s *Session) TurnOn(zone common.Zone) error {
	return s.send(packet.On, zone)
}

func (s *Session) TurnOff(zone common.Zone) error {
	return s.send(packet.Off, zone)
}

func (s *Session) SetColor(color common.Color, zone common.Zone) error {
	return s.send(packet.Color(uint8(color)), zone)
}

func (s *Session) SetSaturation(saturation int, zone common.Zone) error {
	return s.send(packet.Saturation(saturation), zone)
}

func (s *Session) SetBrightness(brightness int, zone common.Zone) error {
	return s.send(packet.Brightness(brightness), zone)
}

func (s *Session) SetTemperature(temperature common.Temperature, zone common.Zone) error {
	return s.send(packet.Temperature(int(temperature)), zone)
}

func (s *Session) SetDiscoMode(mode int, zone common.Zone) error {
	return s.send(packet.DiscoMode(mode), zone)
}

func (s *Session) SpeedUpDiscoMode(zone common.Zone) error {
	return s.send(packet.DiscoSpeedUp, zone)
}

func (s *Session) SlowDownDiscoMode(zone common.Zone) error {
	return s.send(packet.DiscoSlowDown, zone)
}

func (s *Session) SetWhiteMode(zone common.Zone) error {
	return s.send(packet.WhiteMode, zone)
}

func (s *Session) SetNightMode(zone common.Zone) error {
	return s.send(packet.NightMode, zone)
}

// Link pairs the lights powered on within the last few seconds with zone
func (s *Session) Link(zone common.Zone) error {
	return s.send(packet.Link, zone)
}

// Unlink clears the pairing of the lights powered on within the last few
// seconds
func (s *Session) Unlink(zone common.Zone) error {
	return s.send(packet.Unlink, zone)
}

func (s *Session) TurnOnBridgeLamp() error {
	return s.sendLamp(packet.LampOn)
}

func (s *Session) TurnOffBridgeLamp() error {
	return s.sendLamp(packet.LampOff)
}

func (s *Session) SetColorBridgeLamp(color common.Color) error {
	return s.sendLamp(packet.LampColor(uint8(color)))
}

func (s *Session) SetBrightnessBridgeLamp(brightness int) error {
	return s.sendLamp(packet.LampBrightness(brightness))
}

func (s *Session) SetDiscoModeBridgeLamp(mode int) error {
	return s.sendLamp(packet.LampDiscoMode(mode))
}

func (s *Session) SpeedUpDiscoModeBridgeLamp() error {
	return s.sendLamp(packet.LampDiscoUp)
}

func (s *Session) SlowDownDiscoModeBridgeLamp() error {
	return s.sendLamp(packet.LampDiscoDown)
}

func (s *Session) SetWhiteModeBridgeLamp() error {
	return s.sendLamp(packet.LampWhiteMode)
}

func (s *Session) sendLamp(cmd packet.Command) error {
	return s.send(cmd, common.Zone(packet.BridgeLampZone))
}

func (s *Session) send(cmd packet.Command, zone common.Zone) error {
	if !zone.Valid() {
		return fmt.Errorf("%w: %d", packet.ErrInvalidZone, zone)
	}

	s.Lock()
	defer s.Unlock()
	if s.conn == nil {
		return common.ErrNotConnected
	}

	resp, err := s.startSession()
	if err != nil {
		return err
	}

	s.sequence++
	if s.sequence == 0 {
		s.sequence++
	}
	frame, err := packet.Request(resp.SessionID1, resp.SessionID2, s.sequence, cmd, uint8(zone))
	if err != nil {
		return err
	}

	s.log.Debugf("Sending seq %d to %s: % x", s.sequence, s.addr, frame)
	b, err := s.roundTrip(frame, packet.AckSize)
	if err != nil {
		return err
	}
	if !packet.IsAck(b, s.sequence) {
		return fmt.Errorf("%w: seq %d", common.ErrNoAck, s.sequence)
	}

	return nil
}

func (s *Session) startSession() (packet.SessionResponse, error) {
	b, err := s.roundTrip(packet.StartSession(), packet.SessionResponseSize)
	if err != nil {
		return packet.SessionResponse{}, err
	}
	return packet.DecodeSessionResponse(b)
}

func (s *Session) roundTrip(frame []byte, size int) ([]byte, error) {
	if _, err := s.conn.WriteToUDP(frame, s.addr); err != nil {
		return nil, err
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, 64)
	n, _, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", common.ErrTimeout, err)
		}
		return nil, err
	}
	if n != size {
		s.log.Debugf("Expected %d bytes from %s, got %d", size, s.addr, n)
	}
	return buf[:n], nil
}
