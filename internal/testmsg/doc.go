// Package testmsg contains message types written by hand in the shape the
// code generator emits: a memoized MessageSize, a Serialize method and a
// Deserialize function, with unrecognized fields kept in an UnknownFieldSet.
//
// The schema they follow:
//
//	message Person {
//	  bytes id = 1;                         // wrapped as uuid.UUID
//	  string name = 2;
//	  int32 age = 3;
//	  sint64 balance = 4;
//	  repeated int32 scores = 5;            // packed
//	  repeated string tags = 6;
//	  map<string, int64> attrs = 7;
//	  Address home = 8;
//	  google.protobuf.Timestamp created = 9; // wrapped as time.Time
//	  double ratio = 10;
//	  fixed32 flags = 11;
//	  google.protobuf.Duration timeout = 13; // wrapped as time.Duration
//	  google.protobuf.StringValue nickname = 14;
//	}
//
//	message Address {
//	  string street = 1;
//	  uint32 zip = 2;
//	}
//
//	message Node {
//	  int32 value = 1;
//	  Node child = 2;
//	}
//
// PersonName is Person as seen by an older schema that only knows name.
package testmsg
