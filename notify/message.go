package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/coder/websocket"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

// ErrEmptyMessage is returned for a message with neither a state nor an intensity.
var ErrEmptyMessage = errors.New("message carries no state or intensity")

// Message is one gameplay notification on the wire. Text frames carry JSON,
// binary frames carry msgpack.
type Message struct {
	State     string   `json:"state,omitempty" codec:"state,omitempty"`
	Intensity *float64 `json:"intensity,omitempty" codec:"intensity,omitempty"`
}

var msgpackHandle = &codec.MsgpackHandle{}

// Event converts m to a soundtrack event. A numeric intensity wins over a state.
func (m Message) Event() (soundtrack.Event, error) {
	switch {
	case m.Intensity != nil:
		if math.IsNaN(*m.Intensity) || math.IsInf(*m.Intensity, 0) {
			return soundtrack.Event{}, fmt.Errorf("intensity %v is not a number", *m.Intensity)
		}
		return soundtrack.IntensityEvent(*m.Intensity), nil
	case m.State != "":
		return soundtrack.StateEvent(m.State), nil
	}
	return soundtrack.Event{}, ErrEmptyMessage
}

// Decode parses a frame according to its type.
func Decode(typ websocket.MessageType, data []byte) (Message, error) {
	var m Message
	switch typ {
	case websocket.MessageText:
		if err := json.Unmarshal(data, &m); err != nil {
			return Message{}, fmt.Errorf("failed to decode json message: %w", err)
		}
	case websocket.MessageBinary:
		if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(&m); err != nil {
			return Message{}, fmt.Errorf("failed to decode msgpack message: %w", err)
		}
	default:
		return Message{}, fmt.Errorf("unsupported frame type %v", typ)
	}
	return m, nil
}

// Encode serializes m for the given frame type.
func Encode(typ websocket.MessageType, m Message) ([]byte, error) {
	switch typ {
	case websocket.MessageText:
		return json.Marshal(m)
	case websocket.MessageBinary:
		var out []byte
		if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(m); err != nil {
			return nil, fmt.Errorf("failed to encode msgpack message: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported frame type %v", typ)
}
