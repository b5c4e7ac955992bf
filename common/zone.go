package common

import "strconv"

// Zone addresses a group of lights paired with a bridge
type Zone uint8

const (
	// ZoneAll addresses every zone of a bridge at once
	ZoneAll Zone = iota
	Zone1
	Zone2
	Zone3
	Zone4
)

// MaxZone is the highest zone a v6 bridge supports
const MaxZone = Zone4

func (z Zone) String() string {
	if z == ZoneAll {
		return `all`
	}
	return strconv.Itoa(int(z))
}

// Valid reports whether z is addressable on a v6 bridge
func (z Zone) Valid() bool {
	return z <= MaxZone
}
