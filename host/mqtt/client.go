package mqtt

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

// Client is the subset of an MQTT client used by Host
type Client interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error
	Disconnect()
}

type pahoClient struct {
	client  paho.Client
	timeout time.Duration
}

// Dial connects to broker, e.g. tcp://localhost:1883
func Dial(broker string, timeout time.Duration, logger common.Logger) (Client, error) {
	log := common.LoggerOrStub(logger)
	if timeout <= 0 {
		timeout = common.DefaultTimeout
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(`milight-` + uuid.NewString()).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warnf("Lost connection to %s: %v", broker, err)
		}).
		SetOnConnectHandler(func(paho.Client) {
			log.Infof("Connected to %s", broker)
		})

	c := paho.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, common.ErrTimeout
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return &pahoClient{client: c, timeout: timeout}, nil
}

func (p *pahoClient) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return p.wait(p.client.Publish(topic, qos, retained, payload))
}

func (p *pahoClient) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	return p.wait(p.client.Subscribe(topic, qos, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	}))
}

func (p *pahoClient) Disconnect() {
	p.client.Disconnect(250)
}

func (p *pahoClient) wait(token paho.Token) error {
	if !token.WaitTimeout(p.timeout) {
		return common.ErrTimeout
	}
	return token.Error()
}
