// Package stream provides streaming encode/decode for Ion text.
//
// The Encoder and NodeWriter implement ion.Writer: a field name and
// annotations are staged, then a value or container is written. Each call
// is checked against a State which tracks the container stack and the
// path of the current value, so grammar errors such as a value without a
// field name inside a struct are reported with their location.
//
// # Example: Encoding
//
//	enc := stream.NewEncoder(writer)
//	enc.Begin(ion.StructType)
//	enc.FieldName("name")
//	enc.Annotations("tag")
//	enc.WriteString("value")
//	enc.End()
//	enc.Finish() // {name:tag::"value"}
//
// # Example: Decoding
//
//	dec := stream.NewDecoderBytes([]byte(`{name:tag::"value"}`))
//	ev, _ := dec.ReadEvent() // Begin struct
//	ev, _ = dec.ReadEvent()  // Value string, Field name, Annotations [tag]
//	ev, _ = dec.ReadEvent()  // End struct
//
// Commas and colons are elided and comments are skipped. A top level
// $ion_1_0 version marker is dropped.
package stream
