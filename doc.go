// Package taskcodec converts between JSON task descriptions and typed task values.
//
// Incoming documents carry a discriminator ("type" by default) naming one of a fixed
// set of variants. Each variant is a plain struct registered together with a
// constructor that turns the decoded description plus an opaque execution
// environment into the caller's task type. Outgoing values are encoded with the
// same conventions:
//
//   - keys are the snake_case form of Go field names (StartTimestamp -> start_timestamp)
//   - absent values (nil pointers, slices, maps) are written as explicit null
//   - time.Time is written as yyyy-MM-ddTHH:mm:ss.SSSZ in UTC
//
// Components:
//   - Registry[T]: immutable tag -> variant table built from typed Define calls.
//   - Codec[T]: Decode / Encode / Marshal over a pluggable document Format.
//   - format: JSON (default), MessagePack, CBOR and protobuf Struct document forms.
//   - store: persists encoded descriptions in a byte Provider and reloads them as tasks.
//
// Usage:
//
//	reg, _ := taskcodec.NewRegistry(
//	    taskcodec.Define("ping", newPingTask),
//	    taskcodec.Define("traceroute", newTracerouteTask),
//	)
//	c, _ := taskcodec.New(taskcodec.Options[Task]{Registry: reg})
//	task, err := c.Decode(payload, env)
package taskcodec
