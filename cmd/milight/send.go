package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/device"
	"github.com/therealmysteryman/udi-milight-pg3/protocol"
	"github.com/therealmysteryman/udi-milight-pg3/protocol/v6/bridge"
)

var (
	flagPort int

	cmdSend = &cobra.Command{
		Use:   `send <host> <bridge|all|1-4> <COMMAND> [value]`,
		Short: `send a single command and print the resulting drivers`,
		Run:   send,
	}

	cmdMac = &cobra.Command{
		Use:   `mac <host>`,
		Short: `print the MAC address of a bridge`,
		Run:   mac,
	}
)

func init() {
	cmdSend.Flags().IntVarP(&flagPort, `port`, `p`, common.DefaultPort, `bridge UDP port`)
	cmdMac.Flags().IntVarP(&flagPort, `port`, `p`, common.DefaultPort, `bridge UDP port`)
}

func send(c *cobra.Command, args []string) {
	if len(args) < 3 || len(args) > 4 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Expected host, target and command`)
	}

	cmd := common.NewCommand(common.CommandName(strings.ToUpper(args[2])))
	if len(args) == 4 {
		v, err := strconv.Atoi(args[3])
		if err != nil {
			logger.WithField(`value`, args[3]).Fatalln(`Value must be an integer`)
		}
		cmd = common.NewValueCommand(cmd.Name, v)
	}

	v6 := &protocol.V6{Logger: logger}
	defer v6.Close()

	cfg := device.Config{
		Address: `send`,
		Name:    args[1],
		Host:    args[0],
		Port:    flagPort,
		Timeout: flagTimeout,
		Session: v6.NewSession(),
		Logger:  logger,
	}
	dev, err := newTarget(cfg, args[1])
	if err != nil {
		logger.WithFields(logrus.Fields{
			`target`: args[1],
			`error`:  err,
		}).Fatalln(`Invalid target`)
	}

	if err := dev.Start(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not reach the bridge`)
	}
	if err := dev.Execute(cmd); err != nil {
		logger.WithField(`error`, err).Fatalln(`Command failed`)
	}

	printDrivers(os.Stdout, dev.Drivers(), !term.IsTerminal(int(os.Stdout.Fd())))
}

func mac(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing host`)
	}

	s := bridge.New(logger)
	defer s.Close()
	if err := s.Setup(args[0], flagPort, flagTimeout); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not reach the bridge`)
	}
	addr, err := s.MacAddress()
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not read the MAC address`)
	}
	fmt.Println(addr)
}

func newTarget(cfg device.Config, target string) (*device.Device, error) {
	switch strings.ToLower(target) {
	case `bridge`:
		return device.NewBridge(cfg), nil
	case `all`:
		return device.NewGroup(cfg), nil
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", common.ErrOutOfRange, target)
	}
	return device.NewZone(cfg, common.Zone(n))
}

func printDrivers(w io.Writer, values []common.DriverValue, plain bool) {
	key := color.New(color.FgCyan)
	on := color.New(color.FgGreen, color.Bold)
	off := color.New(color.FgRed)
	if plain {
		key.DisableColor()
		on.DisableColor()
		off.DisableColor()
	}

	for _, v := range values {
		_, _ = key.Fprintf(w, "%-4s", v.Driver)
		switch {
		case v.Driver == common.DriverTemperature:
			fmt.Fprintf(w, " %d (%dK)\n", v.Value, common.Temperature(v.Value).Kelvin())
		case v.Driver != common.DriverStatus:
			fmt.Fprintf(w, " %d\n", v.Value)
		case v.Value == common.PowerOff:
			_, _ = off.Fprintln(w, ` off`)
		default:
			_, _ = on.Fprintln(w, ` on`)
		}
	}
}
