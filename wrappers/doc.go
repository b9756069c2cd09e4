// Package wrappers provides converters for wrapper-typed fields: fields whose
// wire value is exposed to application code as a richer domain type.
//
//   - UUID: 16 raw bytes as a uuid.UUID
//   - Timestamp: google.protobuf.Timestamp as a time.Time
//   - Duration: google.protobuf.Duration as a time.Duration
//   - Kind: the scalar google.protobuf.*Value wrapper messages
//
// Converters plug into the lazy package's reference cells.
package wrappers
