// Package config loads the settings of the MiLight node server.
//
// Settings come from command line flags, then MILIGHT_* environment
// variables, then .env files, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// Flag names, the environment variable of each is MILIGHT_ followed by the
// upper cased name with dashes replaced by underscores
const (
	FlagHost       = `host`
	FlagPort       = `port`
	FlagTimeout    = `session-timeout`
	FlagAllZones   = `all-zones`
	FlagShortPoll  = `short-poll`
	FlagLongPoll   = `long-poll`
	FlagMQTTBroker = `mqtt-broker`
	FlagMQTTPrefix = `mqtt-prefix`
	FlagListen     = `listen`
	FlagLogLevel   = `log-level`
)

// Custom parameter keys, as delivered by the host
const (
	ParamHost     = `host`
	ParamPort     = `port`
	ParamTimeout  = `timeout`
	ParamAllZones = `all_zones`
)

const envPrefix = `MILIGHT_`

// Settings for the node server
type Settings struct {
	// Host is a comma separated list of bridge hosts
	Host     string
	Port     int
	Timeout  time.Duration
	AllZones bool

	ShortPoll time.Duration
	LongPoll  time.Duration

	// MQTTBroker selects the MQTT host when set, e.g. tcp://localhost:1883
	MQTTBroker string
	MQTTPrefix string
	// Listen is the HTTP API address, disabled when empty
	Listen   string
	LogLevel string
}

// Default returns the default settings
func Default() Settings {
	return Settings{
		Port:       common.DefaultPort,
		Timeout:    common.DefaultSessionTimeout,
		ShortPoll:  common.DefaultShortPoll,
		LongPoll:   common.DefaultLongPoll,
		MQTTPrefix: `milight`,
		LogLevel:   `info`,
	}
}

// RegisterFlags adds the settings flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagHost, ``, `Comma separated MiLight bridge hosts`)
	fs.Int(FlagPort, d.Port, `MiLight bridge UDP port`)
	fs.Duration(FlagTimeout, d.Timeout, `Bridge session timeout`)
	fs.Bool(FlagAllZones, false, `Add a node addressing every zone of each bridge`)
	fs.Duration(FlagShortPoll, d.ShortPoll, `Short poll interval`)
	fs.Duration(FlagLongPoll, d.LongPoll, `Long poll (heartbeat) interval`)
	fs.String(FlagMQTTBroker, ``, `MQTT broker URL, the in-memory host is used when empty`)
	fs.String(FlagMQTTPrefix, d.MQTTPrefix, `MQTT topic prefix`)
	fs.String(FlagListen, ``, `HTTP API listen address, e.g. :8080`)
}

// Load returns the settings from fs, the environment and envFiles.  Missing
// env files are ignored, fs may be nil.
func Load(fs *pflag.FlagSet, envFiles ...string) (Settings, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	s := Default()
	if err := s.applyEnv(os.LookupEnv); err != nil {
		return Settings{}, err
	}
	if fs != nil {
		if err := s.applyFlags(fs); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

// CustomParams returns the settings as the custom parameters the host would
// deliver
func (s Settings) CustomParams() map[string]string {
	params := map[string]string{
		ParamHost:    s.Host,
		ParamPort:    strconv.Itoa(s.Port),
		ParamTimeout: strconv.Itoa(int(s.Timeout / time.Second)),
	}
	if s.AllZones {
		params[ParamAllZones] = `true`
	}
	return params
}

// EnvName returns the environment variable for a flag name
func EnvName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, `-`, `_`))
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	get := func(flag string) (string, bool) {
		v, ok := lookup(EnvName(flag))
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ``
	}

	if v, ok := get(FlagHost); ok {
		s.Host = v
	}
	if v, ok := get(FlagPort); ok {
		if s.Port, err = strconv.Atoi(v); err != nil {
			return &common.ConfigurationError{Param: EnvName(FlagPort), Err: err}
		}
	}
	if v, ok := get(FlagTimeout); ok {
		if s.Timeout, err = ParseSeconds(v); err != nil {
			return &common.ConfigurationError{Param: EnvName(FlagTimeout), Err: err}
		}
	}
	if v, ok := get(FlagAllZones); ok {
		if s.AllZones, err = strconv.ParseBool(v); err != nil {
			return &common.ConfigurationError{Param: EnvName(FlagAllZones), Err: err}
		}
	}
	if v, ok := get(FlagShortPoll); ok {
		if s.ShortPoll, err = ParseSeconds(v); err != nil {
			return &common.ConfigurationError{Param: EnvName(FlagShortPoll), Err: err}
		}
	}
	if v, ok := get(FlagLongPoll); ok {
		if s.LongPoll, err = ParseSeconds(v); err != nil {
			return &common.ConfigurationError{Param: EnvName(FlagLongPoll), Err: err}
		}
	}
	if v, ok := get(FlagMQTTBroker); ok {
		s.MQTTBroker = v
	}
	if v, ok := get(FlagMQTTPrefix); ok {
		s.MQTTPrefix = v
	}
	if v, ok := get(FlagListen); ok {
		s.Listen = v
	}
	if v, ok := get(FlagLogLevel); ok {
		s.LogLevel = v
	}
	return nil
}

func (s *Settings) applyFlags(fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		return fs.Lookup(name) != nil && fs.Changed(name)
	}

	if changed(FlagHost) {
		if s.Host, err = fs.GetString(FlagHost); err != nil {
			return err
		}
	}
	if changed(FlagPort) {
		if s.Port, err = fs.GetInt(FlagPort); err != nil {
			return err
		}
	}
	if changed(FlagTimeout) {
		if s.Timeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	if changed(FlagAllZones) {
		if s.AllZones, err = fs.GetBool(FlagAllZones); err != nil {
			return err
		}
	}
	if changed(FlagShortPoll) {
		if s.ShortPoll, err = fs.GetDuration(FlagShortPoll); err != nil {
			return err
		}
	}
	if changed(FlagLongPoll) {
		if s.LongPoll, err = fs.GetDuration(FlagLongPoll); err != nil {
			return err
		}
	}
	if changed(FlagMQTTBroker) {
		if s.MQTTBroker, err = fs.GetString(FlagMQTTBroker); err != nil {
			return err
		}
	}
	if changed(FlagMQTTPrefix) {
		if s.MQTTPrefix, err = fs.GetString(FlagMQTTPrefix); err != nil {
			return err
		}
	}
	if changed(FlagListen) {
		if s.Listen, err = fs.GetString(FlagListen); err != nil {
			return err
		}
	}
	if changed(FlagLogLevel) {
		if s.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	return nil
}

// ParseSeconds parses either a plain number of seconds or a duration string
func ParseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, common.ErrOutOfRange
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, common.ErrOutOfRange
	}
	return d, nil
}
