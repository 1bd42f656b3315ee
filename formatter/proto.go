package formatter

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// BuildProto serializes a response as a binary google.protobuf.Struct
// carrying the same fields as the JSON form
func (rb *responseBuilder) BuildProto(res any) ([]byte, error) {
	js, err := rb.BuildJSON(res)
	if err != nil {
		return nil, err
	}
	var st structpb.Struct
	if err := protojson.Unmarshal(js, &st); err != nil {
		return nil, fmt.Errorf("failed to convert response to struct: %w", err)
	}
	return proto.Marshal(&st)
}

// Build serializes res in the named format: "json" (default) or "pb"
func (rb *responseBuilder) Build(res any, format string) ([]byte, error) {
	switch format {
	case "pb", "proto", "protobuf":
		return rb.BuildProto(res)
	case "", "json":
		return rb.BuildJSON(res)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// DecodeProto reads a payload written by BuildProto back into a Struct
func DecodeProto(b []byte) (*structpb.Struct, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
