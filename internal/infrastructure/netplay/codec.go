package netplay

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Datagram kinds.
const (
	kindJoin  = "join"
	kindLeave = "leave"
	kindData  = "data"
)

// maxDatagram is the largest payload read from the socket.
const maxDatagram = 65535

var errMalformedFrame = errors.New("malformed frame")

// toValue converts any JSON-serializable value into a protobuf Value.
func toValue(v any) (*structpb.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return structpb.NewValue(generic)
}

// encode frames a payload as a protobuf Struct {kind, data}.
func encode(kind string, v any) ([]byte, error) {
	payload, err := toValue(v)
	if err != nil {
		return nil, err
	}
	frame := &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind": structpb.NewStringValue(kind),
		"data": payload,
	}}
	return proto.Marshal(frame)
}

// decode returns the kind and the JSON-shaped payload of a frame. Numbers
// decode as float64, objects as map[string]any, arrays as []any.
func decode(b []byte) (kind string, v any, err error) {
	frame := &structpb.Struct{}
	if err := proto.Unmarshal(b, frame); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformedFrame, err)
	}
	k, ok := frame.GetFields()["kind"]
	if !ok {
		return "", nil, fmt.Errorf("%w: missing kind", errMalformedFrame)
	}
	return k.GetStringValue(), frame.GetFields()["data"].AsInterface(), nil
}
