package websocket

import "encoding/json"

// Broadcast topics, one per entity-creation event.
const (
	EventNewAssignment = "new_assignment"
	EventNewUser       = "new_user"
)

// Message is the envelope for every event pushed to clients.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewMessage builds the wire form of an event envelope.
func NewMessage(event string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: event, Data: payload})
}
