// Package ion holds the data model shared by the builder and its writers:
// value types, symbol tokens, the opaque decimal and timestamp payloads,
// the primitive Writer and Reader surfaces, structural events and an
// in-memory Node representation.
//
// Writers and readers are single cursor and not safe for concurrent use.
package ion
