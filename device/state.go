package device

// State is the connection state of a device session.  There is no terminal
// failed state, every command attempts its own reconnect.
type State int

const (
	// StateUninitialized the session has never been set up
	StateUninitialized State = iota
	// StateConnected the last setup or command succeeded
	StateConnected
	// StateReconnectPending a command failed and the session is being set up
	// again
	StateReconnectPending
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return `uninitialized`
	case StateConnected:
		return `connected`
	case StateReconnectPending:
		return `reconnect pending`
	default:
		return `unknown`
	}
}
