// Package broker republishes live dashboard events to MQTT.
package broker

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	TopicInsights = "dashboard/insights"
	TopicPower    = "dashboard/power"
	TopicAlerts   = "dashboard/alerts"
)

type Publisher interface {
	Publish(topic string, v any) error
	Close()
}

// MQTT publishes JSON payloads at QoS 0.
type MQTT struct {
	client mqtt.Client
	log    zerolog.Logger
}

func NewMQTT(brokerURL, clientID string, log zerolog.Logger) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTT{client: client, log: log.With().Str("component", "mqtt").Logger()}, nil
}

func (m *MQTT) Publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	token := m.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(2*time.Second) {
		return fmt.Errorf("publish %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// TopicAll matches every dashboard topic.
const TopicAll = "dashboard/#"

// Subscribe registers fn for messages on topic. fn runs on the paho
// callback goroutine and must not block.
func (m *MQTT) Subscribe(topic string, fn func(topic string, payload []byte)) error {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		fn(msg.Topic(), msg.Payload())
	}
	if token := m.client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	m.log.Info().Str("topic", topic).Msg("subscribed")
	return nil
}

func (m *MQTT) Close() { m.client.Disconnect(250) }

// Nop drops every event. It is used when MQTT is disabled.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
func (Nop) Close()                    {}
