package amqp

import (
	"encoding/json"
	"time"
)

// Mutation operations carried on the wire.
const (
	OpEntrySaved       = "entry.saved"
	OpEntryRescheduled = "entry.rescheduled"
	OpEntryDeleted     = "entry.deleted"
	OpCategoryDeleted  = "category.deleted"
)

// MutationMessage announces that a record changed. It carries only the
// operation and the record id; consumers fetch the current state from
// the store, so a stale or duplicated message is harmless.
type MutationMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMutationMessage(op, id string) *MutationMessage {
	return &MutationMessage{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
