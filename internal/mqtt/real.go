package mqtt

import (
	"errors"
	"fmt"
	"time"

	"icecream_controller/internal/models"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	retryInterval  = 5 * time.Second
)

var errTimeout = errors.New("timeout")

// RealPublisher publishes to a broker. Status is retained so new subscribers
// see the current state; events are QoS 1 and not retained.
type RealPublisher struct {
	client      paho.Client
	statusTopic string
	eventsTopic string
	now         func() time.Time
}

func NewRealPublisher(broker, clientID, prefix string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: %w", broker, errTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client:      client,
		statusTopic: topic(prefix, TopicStatus),
		eventsTopic: topic(prefix, TopicEvents),
		now:         time.Now,
	}, nil
}

func (p *RealPublisher) PublishStatus(status models.Status) error {
	payload, err := FormatStatusPayload(status, p.now())
	if err != nil {
		return fmt.Errorf("format status payload: %w", err)
	}
	return p.publish(p.statusTopic, 0, true, payload)
}

func (p *RealPublisher) PublishEvent(event models.CompressorEvent) error {
	payload, err := FormatEventPayload(event)
	if err != nil {
		return fmt.Errorf("format event payload: %w", err)
	}
	return p.publish(p.eventsTopic, 1, false, payload)
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: %w", topic, errTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects, allowing one second for in-flight work.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
