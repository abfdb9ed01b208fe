package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const SubjectPresenceRecorded = "rollcall.presence.recorded"

type PresenceRecordedEvent struct {
	ClassSessionId int64     `json:"id_aula"`
	StudentId      int64     `json:"id_aluno"`
	TeacherId      int64     `json:"id_docente"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// Events is told about presences after they are stored
type Events interface {
	PresenceRecorded(event PresenceRecordedEvent) error
}

type noopEvents struct{}

func (noopEvents) PresenceRecorded(PresenceRecordedEvent) error {
	return nil
}

// NatsConnection is the part of persistence.Nats the publisher needs
type NatsConnection interface {
	GetClient() *nats.Conn
}

type NatsEvents struct {
	connection NatsConnection
}

var _ Events = (*NatsEvents)(nil)

func NewNatsEvents(connection NatsConnection) *NatsEvents {
	return &NatsEvents{connection: connection}
}

func (n *NatsEvents) PresenceRecorded(event PresenceRecordedEvent) error {
	client := n.connection.GetClient()
	if client == nil {
		return fmt.Errorf("failed to publish to subject[%s]: no nats connection", SubjectPresenceRecorded)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := client.Publish(SubjectPresenceRecorded, data); err != nil {
		return fmt.Errorf("failed to publish to subject[%s]: %w", SubjectPresenceRecorded, err)
	}
	return nil
}
