// Package binfield marshals structs to and from a compact binary representation driven entirely
// by the fields' own declarations; there is no schema besides the struct definition itself.
//
// Fields are written in declaration order, each as exactly its natural width, with no record
// framing, version tag or magic number. Naming conventions configure the wire format per field:
//
// A field whose name carries the size suffix ("Size" by default) declares the length prefix of
// the next field sharing its base name. `NameSize uint16` followed by `Name string` puts a 2-byte
// length before Name's bytes; the size field itself occupies no further space on the wire, and its
// value is synthesized from the data's real length. String and byte fields with no size field get
// a length prefix of the session's default width.
//
// A string field whose name carries the c-string suffix ("Cstr" by default) is written as its
// payload followed by a single 0x00 terminator, with no length prefix.
//
// Nested structs recurse sharing the enclosing record's traversal; slices write their elements
// back to back with no element count, so they only decode correctly as the last field of the
// outermost record. Fixed-size arrays carry their extent in the type and decode anywhere.
//
// Byte order, suffixes, text encoding and the default prefix width are session configuration;
// see Config. Both sides of the wire must agree on all of them.
package binfield

// Marshal encodes v using the default configuration.
func Marshal(v interface{}) ([]byte, error) {
	return NewMarshaler(nil).Marshal(v)
}

// Unmarshal decodes a single record from data into v using the default configuration.
// v must be a non-nil pointer.
func Unmarshal(data []byte, v interface{}) error {
	return NewUnmarshaler(data, nil).Unmarshal(v)
}
