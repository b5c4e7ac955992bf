package milight_test

import (
	"errors"
	"sync"
	"time"

	. "github.com/therealmysteryman/udi-milight-pg3"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"

	"github.com/stretchr/testify/mock"
	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/device"
	"github.com/therealmysteryman/udi-milight-pg3/host"
	"github.com/therealmysteryman/udi-milight-pg3/mocks"
)

func init() {
	format.UseStringerRepresentation = false
}

type sessionFactory struct {
	sessions []*mocks.Session
	sync.Mutex
}

func (f *sessionFactory) newSession() common.Session {
	s := new(mocks.Session)
	s.On(`Setup`, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.On(`Close`).Return(nil).Maybe()
	f.Lock()
	f.sessions = append(f.sessions, s)
	f.Unlock()
	return s
}

func (f *sessionFactory) count() int {
	f.Lock()
	defer f.Unlock()
	return len(f.sessions)
}

func addresses(devices []common.Device) []string {
	out := make([]string, 0, len(devices))
	for _, dev := range devices {
		out = append(out, dev.Address())
	}
	return out
}

var _ = Describe("Controller", func() {
	var (
		controller   *Controller
		mockProtocol *mocks.Protocol
		memory       *host.Memory
		factory      *sessionFactory
		timeout      = 200 * time.Millisecond
	)

	BeforeEach(func() {
		factory = new(sessionFactory)
		mockProtocol = new(mocks.Protocol)
		mockProtocol.On(`NewSession`).Return(factory.newSession)
		mockProtocol.On(`Close`).Return(nil)
		memory = host.NewMemory(nil)
		controller = NewController(Config{Protocol: mockProtocol, Host: memory})
		Expect(controller.Start()).To(Succeed())
	})

	It("should register the controller node as not yet polled", func() {
		nodes := memory.Nodes()
		Expect(nodes).To(HaveLen(1))
		Expect(nodes[0].Address).To(Equal(ControllerAddress))
		v, ok := memory.Driver(ControllerAddress, common.DriverStatus)
		Expect(ok).To(BeTrue())
		Expect(v.Value).To(Equal(0))
		Expect(v.UOM).To(Equal(common.UOMBoolean))
	})

	Describe("ParameterHandler", func() {
		It("should add one bridge and four zones on the default port", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())

			devices, err := controller.GetDevices()
			Expect(err).NotTo(HaveOccurred())
			Expect(addresses(devices)).To(Equal([]string{
				`bridge1`, `bridge1_zone1`, `bridge1_zone2`, `bridge1_zone3`, `bridge1_zone4`,
			}))
			for _, dev := range devices {
				Expect(dev.Host()).To(Equal(`10.0.0.5`))
				Expect(dev.Primary()).To(Equal(`bridge1`))
			}
			zone, err := controller.GetDeviceByAddress(`bridge1_zone3`)
			Expect(err).NotTo(HaveOccurred())
			Expect(zone.Name()).To(Equal(`Zone3`))
			Expect(zone.NodeDefID()).To(Equal(`MILIGHT_LIGHT`))

			Expect(factory.count()).To(Equal(5))
			for _, s := range factory.sessions {
				s.AssertCalled(GinkgoT(), `Setup`, `10.0.0.5`, common.DefaultPort, common.DefaultSessionTimeout)
			}
			Expect(memory.Nodes()).To(HaveLen(6))
			v, _ := memory.Driver(`bridge1_zone1`, common.DriverBrightness)
			Expect(v.Value).To(Equal(100))
		})

		It("should halt with a notice when the host is missing", func() {
			err := controller.ParameterHandler(map[string]string{`port`: `5987`})
			var cfgErr *common.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(errors.Is(err, common.ErrMissingHost)).To(BeTrue())
			Expect(memory.Notices()).To(Equal(map[string]string{NoticeConfig: MissingHostNotice}))

			_, err = controller.GetDevices()
			Expect(err).To(Equal(common.ErrNotFound))
			mockProtocol.AssertNotCalled(GinkgoT(), `NewSession`)
		})

		It("should clear the notice once the host is provided", func() {
			_ = controller.ParameterHandler(map[string]string{})
			Expect(memory.Notices()).To(HaveLen(1))
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			Expect(memory.Notices()).To(BeEmpty())
		})

		It("should reject an invalid port", func() {
			err := controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`, `port`: `99999`})
			Expect(errors.Is(err, common.ErrOutOfRange)).To(BeTrue())
			Expect(memory.Notices()).To(HaveKey(NoticeConfig))
		})

		It("should use the configured port and timeout", func() {
			Expect(controller.ParameterHandler(map[string]string{
				`host`: `10.0.0.5`, `port`: `6000`, `timeout`: `5`,
			})).To(Succeed())
			for _, s := range factory.sessions {
				s.AssertCalled(GinkgoT(), `Setup`, `10.0.0.5`, 6000, 5*time.Second)
			}
		})

		It("should give every bridge its own nodes and sessions", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5, 10.0.0.6`})).To(Succeed())

			devices, _ := controller.GetDevices()
			Expect(devices).To(HaveLen(10))
			bridge2, err := controller.GetDeviceByAddress(`bridge2_zone4`)
			Expect(err).NotTo(HaveOccurred())
			Expect(bridge2.Host()).To(Equal(`10.0.0.6`))
			Expect(bridge2.Primary()).To(Equal(`bridge2`))

			Expect(factory.count()).To(Equal(10))
			seen := map[*mocks.Session]bool{}
			for _, s := range factory.sessions {
				Expect(seen[s]).To(BeFalse())
				seen[s] = true
			}
		})

		It("should add the all zones group when enabled", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`, `all_zones`: `true`})).To(Succeed())
			group, err := controller.GetDeviceByAddress(`bridge1_all`)
			Expect(err).NotTo(HaveOccurred())
			Expect(group.Kind()).To(Equal(common.KindGroup))
			Expect(group.Name()).To(Equal(`AllZones`))

			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			_, err = controller.GetDeviceByAddress(`bridge1_all`)
			Expect(err).To(Equal(common.ErrNotFound))
		})

		It("should remove the devices of bridges no longer configured", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5,10.0.0.6`})).To(Succeed())
			bridge2Sessions := factory.sessions[5:10]

			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			devices, _ := controller.GetDevices()
			Expect(devices).To(HaveLen(5))
			for _, s := range bridge2Sessions {
				s.AssertCalled(GinkgoT(), `Close`)
			}
			Expect(factory.count()).To(Equal(10))
		})

		It("should rebuild the devices when the timeout changes", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`, `timeout`: `30`})).To(Succeed())
			first := append([]*mocks.Session(nil), factory.sessions...)

			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`, `timeout`: `10`})).To(Succeed())
			Expect(factory.count()).To(Equal(10))
			for _, s := range first {
				s.AssertCalled(GinkgoT(), `Close`)
			}
			for _, s := range factory.sessions[5:] {
				s.AssertCalled(GinkgoT(), `Setup`, `10.0.0.5`, common.DefaultPort, 10*time.Second)
			}
			zone, err := controller.GetDeviceByAddress(`bridge1_zone1`)
			Expect(err).NotTo(HaveOccurred())
			Expect(zone.(*device.Device).Timeout()).To(Equal(10 * time.Second))
		})
	})

	Describe("Discover", func() {
		It("should keep known devices and their sessions", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			Expect(controller.Discover()).To(Succeed())
			Expect(controller.HandleCommand(ControllerAddress, common.NewCommand(common.CommandDiscover))).To(Succeed())
			Expect(factory.count()).To(Equal(5))
		})

		It("should fail without configuration", func() {
			Expect(controller.Discover()).NotTo(Succeed())
		})

		It("should publish new devices to subscribers", func() {
			subscription, err := controller.NewSubscription()
			Expect(err).NotTo(HaveOccurred())
			defer subscription.Close()
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())

			var added []string
			Eventually(func() int {
				for {
					select {
					case ev := <-subscription.Events():
						if e, ok := ev.(common.EventNewDevice); ok {
							added = append(added, e.Device.Address())
						}
					default:
						return len(added)
					}
				}
			}, timeout).Should(Equal(5))
			Expect(added[0]).To(Equal(`bridge1`))
		})

		It("should stop publishing to closed subscriptions", func() {
			subscription, _ := controller.NewSubscription()
			Expect(subscription.Close()).To(Succeed())
			Expect(subscription.Close()).To(Equal(common.ErrClosed))
			Expect(controller.CloseSubscription(subscription)).To(Equal(common.ErrNotFound))
		})
	})

	Describe("commands", func() {
		BeforeEach(func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
		})

		It("should send palette color 3 to the zone", func() {
			dev, _ := controller.GetDeviceByAddress(`bridge1_zone3`)
			Expect(dev).NotTo(BeNil())
			session := factory.sessions[3]
			session.On(`SetColor`, common.ColorGreen, common.Zone3).Return(nil).Once()

			Expect(controller.HandleCommand(`bridge1_zone3`, common.NewValueCommand(common.CommandColor, 3))).To(Succeed())
			v, ok := memory.Driver(`bridge1_zone3`, common.DriverColor)
			Expect(ok).To(BeTrue())
			Expect(v.Value).To(Equal(0x7A))
			session.AssertExpectations(GinkgoT())
		})

		It("should turn on the bridge lamp", func() {
			session := factory.sessions[0]
			session.On(`TurnOnBridgeLamp`).Return(nil).Once()

			Expect(controller.HandleCommand(`bridge1`, common.NewCommand(common.CommandOn))).To(Succeed())
			v, _ := memory.Driver(`bridge1`, common.DriverStatus)
			Expect(v.Value).To(Equal(common.PowerOn))
		})

		It("should reject unknown nodes", func() {
			err := controller.HandleCommand(`bridge9`, common.NewCommand(common.CommandOn))
			Expect(errors.Is(err, common.ErrNotFound)).To(BeTrue())
		})

		It("should reject device commands on the controller", func() {
			err := controller.HandleCommand(ControllerAddress, common.NewCommand(common.CommandOn))
			Expect(errors.Is(err, common.ErrUnsupported)).To(BeTrue())
		})

		It("should report every driver on QUERY without contacting the bridges", func() {
			Expect(controller.HandleCommand(ControllerAddress, common.NewCommand(common.CommandQuery))).To(Succeed())
			for _, s := range factory.sessions {
				s.AssertNumberOfCalls(GinkgoT(), `Setup`, 1)
			}
		})

		It("should route device QUERY to a session refresh", func() {
			Expect(controller.HandleCommand(`bridge1_zone1`, common.NewCommand(common.CommandQuery))).To(Succeed())
			factory.sessions[1].AssertNumberOfCalls(GinkgoT(), `Setup`, 2)
		})
	})

	Describe("Poll", func() {
		It("should mark the controller polled and refresh every session", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			Expect(controller.Poll(host.ShortPoll)).To(Succeed())

			Expect(controller.Status()).To(Equal(1))
			v, _ := memory.Driver(ControllerAddress, common.DriverStatus)
			Expect(v.Value).To(Equal(1))
			for _, s := range factory.sessions {
				s.AssertNumberOfCalls(GinkgoT(), `Setup`, 2)
			}
		})

		It("should alternate the heartbeat starting with DON", func() {
			Expect(controller.Poll(host.LongPoll)).To(Succeed())
			Expect(controller.Poll(host.LongPoll)).To(Succeed())
			Expect(controller.Heartbeat()).To(Succeed())

			commands := memory.Commands()
			Expect(commands).To(HaveLen(3))
			Expect(commands[0].Command).To(Equal(common.CommandOn))
			Expect(commands[1].Command).To(Equal(common.CommandOff))
			Expect(commands[2].Command).To(Equal(common.CommandOn))
			Expect(commands[0].UOM).To(Equal(common.UOMBoolean))
			Expect(commands[0].Address).To(Equal(ControllerAddress))
		})
	})

	Describe("registry", func() {
		It("should reject duplicate addresses", func() {
			dev := new(mocks.Device)
			dev.On(`Address`).Return(`bridge1`)
			Expect(controller.AddDevice(dev)).To(Succeed())
			Expect(controller.AddDevice(dev)).To(Equal(common.ErrDuplicate))
			Expect(controller.RemoveDeviceByAddress(`bridge1`)).To(Succeed())
			Expect(controller.RemoveDeviceByAddress(`bridge1`)).To(Equal(common.ErrNotFound))
		})

		It("should find devices by name", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5,10.0.0.6`})).To(Succeed())
			dev, err := controller.GetDeviceByName(`Zone2`)
			Expect(err).NotTo(HaveOccurred())
			Expect(dev.Address()).To(Equal(`bridge1_zone2`))
			_, err = controller.GetDeviceByName(`Zone9`)
			Expect(err).To(Equal(common.ErrNotFound))
		})

		It("should route commands to registered devices", func() {
			dev := new(mocks.Device)
			dev.On(`Address`).Return(`custom`)
			dev.On(`Execute`, common.NewCommand(common.CommandWhiteMode)).Return(nil).Once()
			Expect(controller.AddDevice(dev)).To(Succeed())

			Expect(controller.HandleCommand(`custom`, common.NewCommand(common.CommandWhiteMode))).To(Succeed())
			dev.AssertExpectations(GinkgoT())
		})
	})

	Describe("lifecycle", func() {
		It("should close every session on Stop", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			Expect(controller.Stop()).To(Succeed())
			for _, s := range factory.sessions {
				s.AssertCalled(GinkgoT(), `Close`)
			}
		})

		It("should forget every device on Delete", func() {
			Expect(controller.ParameterHandler(map[string]string{`host`: `10.0.0.5`})).To(Succeed())
			Expect(controller.Delete()).To(Succeed())
			_, err := controller.GetDevices()
			Expect(err).To(Equal(common.ErrNotFound))
			mockProtocol.AssertCalled(GinkgoT(), `Close`)
		})

		It("should handle events delivered by the runtime", func() {
			rt := host.NewRuntime(time.Hour, time.Hour, nil)
			controller.Register(rt)

			Expect(rt.Dispatch(host.Event{Type: host.EventCustomParams, Params: map[string]string{`host`: `10.0.0.5`}})).To(Succeed())
			Expect(rt.Dispatch(host.Event{Type: host.EventPoll, Poll: host.LongPoll})).To(Succeed())
			Expect(rt.Dispatch(host.Event{Type: host.EventCommand, Address: `nope`, Command: common.NewCommand(common.CommandOn)})).NotTo(Succeed())
			Expect(rt.Dispatch(host.Event{Type: host.EventStop})).To(Succeed())

			devices, _ := controller.GetDevices()
			Expect(devices).To(HaveLen(5))
			Expect(memory.Commands()).To(HaveLen(1))
		})
	})
})
