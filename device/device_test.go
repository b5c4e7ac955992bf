package device_test

import (
	"errors"
	"sync"
	"time"

	. "github.com/therealmysteryman/udi-milight-pg3/device"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/stretchr/testify/mock"
	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/mocks"
)

type reported struct {
	address string
	value   common.DriverValue
}

type recorder struct {
	reports []reported
	sync.Mutex
}

func (r *recorder) ReportDriver(address string, value common.DriverValue) {
	r.Lock()
	r.reports = append(r.reports, reported{address: address, value: value})
	r.Unlock()
}

func (r *recorder) count(id common.DriverID) int {
	r.Lock()
	defer r.Unlock()
	n := 0
	for _, rep := range r.reports {
		if rep.value.Driver == id {
			n++
		}
	}
	return n
}

func quietLogger() *mocks.Logger {
	l := new(mocks.Logger)
	for _, level := range []string{`Debugf`, `Infof`, `Warnf`, `Errorf`} {
		l.On(level, mock.Anything, mock.Anything).Return()
	}
	return l
}

var _ = Describe("Device", func() {
	var (
		session  *mocks.Session
		logger   *mocks.Logger
		reporter *recorder
		cfg      Config

		host    = `10.0.0.5`
		failure = errors.New(`no ack`)
	)

	BeforeEach(func() {
		session = new(mocks.Session)
		logger = quietLogger()
		reporter = new(recorder)
		cfg = Config{
			Address:  `bridge1_zone2`,
			Primary:  `bridge1`,
			Name:     `Zone2`,
			Host:     host,
			Session:  session,
			Reporter: reporter,
			Logger:   logger,
		}
	})

	Describe("constructors", func() {
		It("should reject zones outside 1..4", func() {
			_, err := NewZone(cfg, common.ZoneAll)
			Expect(errors.Is(err, common.ErrOutOfRange)).To(BeTrue())
			_, err = NewZone(cfg, common.Zone(5))
			Expect(errors.Is(err, common.ErrOutOfRange)).To(BeTrue())
		})

		It("should apply the default port and timeout", func() {
			d, err := NewZone(cfg, common.Zone2)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Port()).To(Equal(common.DefaultPort))
			Expect(d.NodeDefID()).To(Equal(NodeDefLight))
			Expect(d.Kind()).To(Equal(common.KindZone))
			Expect(d.State()).To(Equal(StateUninitialized))
		})

		It("should address every zone from a group", func() {
			d := NewGroup(cfg)
			Expect(d.Zone()).To(Equal(common.ZoneAll))
			Expect(d.NodeDefID()).To(Equal(NodeDefGroup))
		})
	})

	Describe("Start", func() {
		It("should connect and report the initial zone drivers", func() {
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(nil).Once()
			d, _ := NewZone(cfg, common.Zone2)

			Expect(d.Start()).To(Succeed())
			Expect(d.State()).To(Equal(StateConnected))
			Expect(d.Drivers()).To(Equal([]common.DriverValue{
				{Driver: common.DriverStatus, Value: 0, UOM: common.UOMOnOff},
				{Driver: common.DriverColor, Value: 0, UOM: common.UOMRaw},
				{Driver: common.DriverSaturation, Value: 0, UOM: common.UOMPercent},
				{Driver: common.DriverBrightness, Value: 100, UOM: common.UOMPercent},
				{Driver: common.DriverEffect, Value: 1, UOM: common.UOMIndex},
				{Driver: common.DriverTemperature, Value: 0, UOM: common.UOMIndex},
			}))
			Expect(reporter.reports).To(HaveLen(6))
			session.AssertExpectations(GinkgoT())
		})

		It("should report the bridge drivers without saturation or temperature", func() {
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(nil)
			d := NewBridge(cfg)

			Expect(d.Start()).To(Succeed())
			Expect(d.Drivers()).To(HaveLen(4))
			_, ok := d.Driver(common.DriverSaturation)
			Expect(ok).To(BeFalse())
		})

		It("should still seed the drivers when the bridge is unreachable", func() {
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(failure)
			d, _ := NewZone(cfg, common.Zone2)

			Expect(d.Start()).To(MatchError(failure))
			Expect(d.State()).To(Equal(StateUninitialized))
			Expect(reporter.reports).To(HaveLen(6))
			logger.AssertCalled(GinkgoT(), `Errorf`, mock.Anything, mock.Anything)
		})
	})

	Describe("Execute", func() {
		var d *Device

		BeforeEach(func() {
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(nil)
			d, _ = NewZone(cfg, common.Zone2)
			Expect(d.Start()).To(Succeed())
			reporter.reports = nil
		})

		It("should send palette color 3 as green to the zone", func() {
			session.On(`SetColor`, common.ColorGreen, common.Zone2).Return(nil).Once()

			Expect(d.Execute(common.NewValueCommand(common.CommandColor, 3))).To(Succeed())
			v, _ := d.Driver(common.DriverColor)
			Expect(v).To(Equal(0x7A))
			Expect(reporter.count(common.DriverColor)).To(Equal(1))
			session.AssertExpectations(GinkgoT())
		})

		It("should send raw color ids unchanged", func() {
			session.On(`SetColor`, common.Color(200), common.Zone2).Return(nil).Once()

			Expect(d.Execute(common.NewValueCommand(common.CommandColorID, 200))).To(Succeed())
			v, _ := d.Driver(common.DriverColor)
			Expect(v).To(Equal(200))
		})

		It("should map temperature palette indexes", func() {
			session.On(`SetTemperature`, common.TemperatureCoolWhite, common.Zone2).Return(nil).Once()

			Expect(d.Execute(common.NewValueCommand(common.CommandTemperature, 3))).To(Succeed())
			v, _ := d.Driver(common.DriverTemperature)
			Expect(v).To(Equal(35))
		})

		It("should reject palette index 0 without calling the bridge", func() {
			err := d.Execute(common.NewValueCommand(common.CommandColor, 0))
			Expect(errors.Is(err, common.ErrOutOfRange)).To(BeTrue())
			session.AssertNotCalled(GinkgoT(), `SetColor`, mock.Anything, mock.Anything)
		})

		It("should reject out of range values", func() {
			for _, cmd := range []common.Command{
				common.NewValueCommand(common.CommandBrightness, 101),
				common.NewValueCommand(common.CommandSaturation, -1),
				common.NewValueCommand(common.CommandEffect, 0),
				common.NewValueCommand(common.CommandEffect, 10),
				common.NewValueCommand(common.CommandColorID, 256),
				common.NewValueCommand(common.CommandTemperature, 6),
			} {
				err := d.Execute(cmd)
				Expect(errors.Is(err, common.ErrOutOfRange)).To(BeTrue(), cmd.String())
			}
			Expect(reporter.reports).To(BeEmpty())
		})

		It("should require a value", func() {
			err := d.Execute(common.NewCommand(common.CommandBrightness))
			Expect(errors.Is(err, common.ErrMissingValue)).To(BeTrue())
		})

		It("should leave the state unchanged when a power command repeats", func() {
			session.On(`TurnOn`, common.Zone2).Return(nil).Twice()

			Expect(d.Execute(common.NewCommand(common.CommandOn))).To(Succeed())
			before := d.Drivers()
			Expect(d.Execute(common.NewCommand(common.CommandOn))).To(Succeed())
			Expect(d.Drivers()).To(Equal(before))
			Expect(reporter.count(common.DriverStatus)).To(Equal(2))
		})

		It("should reconnect and retry once after a failure", func() {
			session.On(`TurnOff`, common.Zone2).Return(failure).Once()
			session.On(`TurnOff`, common.Zone2).Return(nil).Once()
			session.On(`TurnOn`, common.Zone2).Return(nil).Once()
			Expect(d.Execute(common.NewCommand(common.CommandOn))).To(Succeed())

			Expect(d.Execute(common.NewCommand(common.CommandOff))).To(Succeed())
			v, _ := d.Driver(common.DriverStatus)
			Expect(v).To(Equal(common.PowerOff))
			session.AssertNumberOfCalls(GinkgoT(), `TurnOff`, 2)
			session.AssertNumberOfCalls(GinkgoT(), `Setup`, 2)
			logger.AssertNotCalled(GinkgoT(), `Warnf`, mock.Anything, mock.Anything)
		})

		It("should give up after the second failure with one warning", func() {
			session.On(`TurnOn`, common.Zone2).Return(failure)

			err := d.Execute(common.NewCommand(common.CommandOn))
			var cmdErr *common.CommandError
			Expect(errors.As(err, &cmdErr)).To(BeTrue())
			Expect(cmdErr.Address).To(Equal(`bridge1_zone2`))
			Expect(errors.Is(err, failure)).To(BeTrue())

			session.AssertNumberOfCalls(GinkgoT(), `TurnOn`, 2)
			logger.AssertNumberOfCalls(GinkgoT(), `Warnf`, 1)
			logger.AssertCalled(GinkgoT(), `Warnf`, `Unable to %s %s`, []interface{}{`Turn ON`, `Zone2`})
			v, _ := d.Driver(common.DriverStatus)
			Expect(v).To(Equal(common.PowerOff))
			Expect(reporter.reports).To(BeEmpty())
		})

		It("should still retry when the reconnect fails", func() {
			setupErr := errors.New(`unreachable`)
			session.ExpectedCalls = nil
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(setupErr)
			session.On(`SetWhiteMode`, common.Zone2).Return(failure)

			Expect(d.Execute(common.NewCommand(common.CommandWhiteMode))).NotTo(Succeed())
			session.AssertNumberOfCalls(GinkgoT(), `SetWhiteMode`, 2)
			Expect(d.State()).To(Equal(StateReconnectPending))
		})

		It("should reject commands the kind does not support", func() {
			b := NewBridge(cfg)
			err := b.Execute(common.NewValueCommand(common.CommandSaturation, 50))
			Expect(errors.Is(err, common.ErrUnsupported)).To(BeTrue())
			Expect(b.Supports(common.CommandNightMode)).To(BeFalse())
			Expect(d.Supports(common.CommandLink)).To(BeTrue())
		})

		It("should run QUERY as a session refresh", func() {
			Expect(d.Execute(common.NewCommand(common.CommandQuery))).To(Succeed())
			Expect(reporter.reports).To(HaveLen(6))
		})
	})

	Describe("lazy connect", func() {
		It("should set up the session on the first command", func() {
			session.On(`Setup`, host, common.DefaultPort, common.DefaultSessionTimeout).Return(nil).Once()
			session.On(`TurnOn`, common.ZoneAll).Return(nil).Once()
			d := NewGroup(cfg)

			Expect(d.Execute(common.NewCommand(common.CommandOn))).To(Succeed())
			Expect(d.State()).To(Equal(StateConnected))
			session.AssertExpectations(GinkgoT())
		})
	})

	Describe("bridge lamp", func() {
		var d *Device

		BeforeEach(func() {
			cfg.Address, cfg.Primary, cfg.Name = `bridge1`, `bridge1`, `Bridge1`
			cfg.Port = 6000
			cfg.Timeout = 5 * time.Second
			session.On(`Setup`, host, 6000, 5*time.Second).Return(nil)
			d = NewBridge(cfg)
		})

		It("should use the bridge lamp operations", func() {
			session.On(`TurnOnBridgeLamp`).Return(nil).Once()
			session.On(`SetColorBridgeLamp`, common.ColorRed).Return(nil).Once()
			session.On(`SetBrightnessBridgeLamp`, 40).Return(nil).Once()
			session.On(`SetDiscoModeBridgeLamp`, 4).Return(nil).Once()
			session.On(`SpeedUpDiscoModeBridgeLamp`).Return(nil).Once()

			Expect(d.Execute(common.NewCommand(common.CommandOn))).To(Succeed())
			Expect(d.Execute(common.NewValueCommand(common.CommandColor, 7))).To(Succeed())
			Expect(d.Execute(common.NewValueCommand(common.CommandBrightness, 40))).To(Succeed())
			Expect(d.Execute(common.NewValueCommand(common.CommandEffect, 4))).To(Succeed())
			Expect(d.Execute(common.NewCommand(common.CommandEffectFaster))).To(Succeed())

			v, _ := d.Driver(common.DriverEffect)
			Expect(v).To(Equal(4))
			v, _ = d.Driver(common.DriverColor)
			Expect(v).To(Equal(int(common.ColorRed)))
			session.AssertExpectations(GinkgoT())
		})

		It("should close the session", func() {
			session.On(`Close`).Return(nil).Once()
			Expect(d.Close()).To(Succeed())
			Expect(d.State()).To(Equal(StateUninitialized))
		})
	})
})
