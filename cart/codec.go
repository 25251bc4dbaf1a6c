package cart

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// State is the persisted form of a cart. The session store reference is
// never part of it.
type State struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency,omitempty"`
	Items    []*Item `json:"items"`
}

// Codec serializes cart state into the opaque blobs a session store keeps.
type Codec interface {
	Marshal(st State) ([]byte, error)
	Unmarshal(data []byte, st *State) error
}

// JSONCodec stores state as JSON. It is the default codec.
type JSONCodec struct{}

// Marshal encodes st as JSON.
func (JSONCodec) Marshal(st State) ([]byte, error) {
	return json.Marshal(st)
}

// Unmarshal decodes JSON state.
func (JSONCodec) Unmarshal(data []byte, st *State) error {
	return json.Unmarshal(data, st)
}

// ProtoCodec stores state as a binary protobuf google.protobuf.Struct built
// from the JSON document. Numbers travel as doubles, which is exact for
// minor unit amounts below 2^53.
type ProtoCodec struct{}

// Marshal encodes st as a protobuf Struct.
func (ProtoCodec) Marshal(st State) ([]byte, error) {
	doc, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return proto.Marshal(s)
}

// Unmarshal decodes a protobuf Struct written by Marshal.
func (ProtoCodec) Unmarshal(data []byte, st *State) error {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return err
	}
	doc, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, st)
}
