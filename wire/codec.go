package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// rawInbound is the permissive JSON form; DecodeInbound tightens it per type.
type rawInbound struct {
	Type       string                 `json:"type"`
	ServerPort *float64               `json:"serverPort"`
	Message    *string                `json:"message"`
	ID         *string                `json:"id"`
	Command    *string                `json:"command"`
	Params     map[string]interface{} `json:"params"`
}

// DecodeInbound decodes and validates one inbound message. Unknown message
// types and missing required fields are errors; the caller logs and skips
// such messages rather than crashing the routing loop.
func DecodeInbound(data []byte) (*Inbound, error) {
	var raw rawInbound
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid message JSON: %w", err)
	}

	if raw.Type == "" {
		return nil, errors.New("message missing type")
	}

	msg := &Inbound{Type: raw.Type}

	switch raw.Type {
	case TypeUpdateSettings:
		if raw.ServerPort == nil {
			return nil, errors.New("update-settings missing serverPort")
		}
		port := int(*raw.ServerPort)
		if port <= 0 {
			return nil, fmt.Errorf("update-settings serverPort must be positive, got %d", port)
		}
		msg.ServerPort = port

	case TypeNotify:
		if raw.Message == nil || *raw.Message == "" {
			return nil, errors.New("notify missing message")
		}
		msg.Message = *raw.Message

	case TypeClosePlugin:
		// No fields.

	case TypeExecuteCommand:
		if raw.ID == nil || *raw.ID == "" {
			return nil, errors.New("execute-command missing id")
		}
		if raw.Command == nil || *raw.Command == "" {
			return nil, errors.New("execute-command missing command")
		}
		msg.ID = *raw.ID
		msg.Command = *raw.Command
		msg.Params = raw.Params // nil stays nil; the dispatcher treats it as empty

	default:
		return nil, fmt.Errorf("unknown message type: %s", raw.Type)
	}

	return msg, nil
}

// EncodeOutbound encodes one outbound message for the channel.
func EncodeOutbound(msg interface{}) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outbound message: %w", err)
	}
	return data, nil
}

// outboundType is the minimal shape needed to route a decoded outbound
// message on the client side.
type outboundType struct {
	Type string `json:"type"`
}

// OutboundType extracts the type tag from an encoded outbound message.
func OutboundType(data []byte) (string, error) {
	var t outboundType
	if err := json.Unmarshal(data, &t); err != nil {
		return "", fmt.Errorf("invalid outbound JSON: %w", err)
	}
	if t.Type == "" {
		return "", errors.New("outbound message missing type")
	}
	return t.Type, nil
}
