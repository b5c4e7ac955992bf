package common

import "strconv"

// CommandName identifies a command accepted from the controller
type CommandName string

const (
	CommandOn           CommandName = `DON`
	CommandOff          CommandName = `DOF`
	CommandColorID      CommandName = `SET_COLOR_ID`
	CommandColor        CommandName = `SET_COLOR`
	CommandSaturation   CommandName = `SET_SAT`
	CommandBrightness   CommandName = `SET_BRI`
	CommandTemperature  CommandName = `CLITEMP`
	CommandEffect       CommandName = `SET_EFFECT`
	CommandEffectFaster CommandName = `EFFECT_FASTER`
	CommandEffectSlower CommandName = `EFFECT_SLOWER`
	CommandWhiteMode    CommandName = `WHITE_MODE`
	CommandNightMode    CommandName = `NIGHT_MODE`
	CommandLink         CommandName = `LINK`
	CommandUnlink       CommandName = `UNLINK`
	CommandQuery        CommandName = `QUERY`
	CommandDiscover     CommandName = `DISCOVER`
)

// Command is a named command with an optional integer value
type Command struct {
	Name  CommandName
	Value *int
}

// NewCommand returns a Command without a value
func NewCommand(name CommandName) Command {
	return Command{Name: name}
}

// NewValueCommand returns a Command carrying value
func NewValueCommand(name CommandName, value int) Command {
	return Command{Name: name, Value: &value}
}

func (c Command) String() string {
	if c.Value == nil {
		return string(c.Name)
	}
	return string(c.Name) + `(` + strconv.Itoa(*c.Value) + `)`
}
