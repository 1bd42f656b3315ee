// Package formatter provides response wrapping and serialization for traffic responses.
//
// This package is organized into:
// - types.go: Response types shared by every format
// - wrapper.go: Building responses from aggregation results
// - json.go: JSON serialization
// - proto.go: Protocol Buffers serialization as a google.protobuf.Struct
package formatter
