package broker

import (
	"encoding/json"
	"fmt"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// PowerReading is the payload on TopicPower.
type PowerReading struct {
	PowerKW   float64 `json:"power_kw"`
	Timestamp int64   `json:"timestamp"`
}

// Event is one decoded dashboard message. Exactly one payload field is set.
type Event struct {
	Topic   string
	Insight *domain.Insight
	Alert   *domain.Alert
	Power   *PowerReading
}

func Decode(topic string, payload []byte) (Event, error) {
	ev := Event{Topic: topic}
	var target any
	switch topic {
	case TopicInsights:
		ev.Insight = &domain.Insight{}
		target = ev.Insight
	case TopicAlerts:
		ev.Alert = &domain.Alert{}
		target = ev.Alert
	case TopicPower:
		ev.Power = &PowerReading{}
		target = ev.Power
	default:
		return Event{}, fmt.Errorf("topic %q: %w", topic, domain.ErrInvalid)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return Event{}, fmt.Errorf("decode %s: %w", topic, err)
	}
	return ev, nil
}
