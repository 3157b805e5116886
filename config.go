package binfield

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/stenella/binfield/binio"
)

// ByteOrder selects the byte order of a session's multi-byte primitives.
type ByteOrder uint8

const (
	// NativeEndian resolves to the byte order of the machine running the session.
	NativeEndian ByteOrder = iota

	// LittleEndian places the least significant byte first.
	LittleEndian

	// BigEndian places the most significant byte first.
	BigEndian
)

// String implements fmt.Stringer.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "NativeEndian"
	}
}

// order resolves the configured choice to a concrete binary.ByteOrder, once, at session construction.
func (o ByteOrder) order() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return hostOrder
	}
}

// Defaults applied by sessions given a nil or partially filled Config.
const (
	// DefaultSizeSuffix marks integer fields that carry the byte length of the next same-named field.
	DefaultSizeSuffix = "Size"

	// DefaultCstrSuffix marks string fields written with a 0x00 terminator instead of a length prefix.
	DefaultCstrSuffix = "Cstr"

	// DefaultSizeWidth is the length prefix width for string and byte fields with no paired size field.
	DefaultSizeWidth = 4
)

// Config defines configuration for Marshalers and Unmarshalers.
// A nil Config is valid and means all defaults.
//
// Config *must* be the same for the marshaling and unmarshaling session;
// there is no negotiation and nothing about the configuration is written to the wire.
type Config struct {
	// ByteOrder is the byte order of every multi-byte primitive in the session.
	ByteOrder ByteOrder

	// SizeSuffix marks size fields. If empty, DefaultSizeSuffix is used.
	SizeSuffix string

	// CstrSuffix marks null-terminated string fields. If empty, DefaultCstrSuffix is used.
	CstrSuffix string

	// Encoding is the text encoding of string payloads on the wire.
	// If nil, strings cross the wire as UTF-8 and are validated on decode.
	Encoding encoding.Encoding

	// DefaultSizeWidth is the length prefix width, in bytes, for string and byte fields
	// with no paired size field. It must be 1, 2, 4 or 8. If 0, DefaultSizeWidth is used.
	DefaultSizeWidth int
}

// copyAndFill returns a filled copy of c, leaving the caller's Config untouched.
// It panics if the configured DefaultSizeWidth is unusable; that is programmer error.
func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.SizeSuffix == "" {
		config.SizeSuffix = DefaultSizeSuffix
	}
	if config.CstrSuffix == "" {
		config.CstrSuffix = DefaultCstrSuffix
	}
	if config.DefaultSizeWidth == 0 {
		config.DefaultSizeWidth = DefaultSizeWidth
	}
	if !binio.ValidWidth(config.DefaultSizeWidth) {
		panic(binio.NewError(binio.ErrBadConfig, fmt.Sprintf("DefaultSizeWidth must be 1, 2, 4 or 8 bytes; got %v", config.DefaultSizeWidth), 0))
	}

	return config
}

// encodeText converts s to its on-wire bytes under the session's text encoding.
func (c *Config) encodeText(s string) ([]byte, error) {
	if c.Encoding == nil {
		return []byte(s), nil
	}

	p, err := c.Encoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, binio.NewError(binio.ErrInvalidEncoding, err.Error(), 0)
	}
	return p, nil
}

// decodeText converts on-wire bytes back to a string under the session's text encoding.
func (c *Config) decodeText(p []byte) (string, error) {
	if c.Encoding == nil {
		if !utf8.Valid(p) {
			return "", binio.NewError(binio.ErrInvalidEncoding, "payload is not valid UTF-8", 0)
		}
		return string(p), nil
	}

	s, err := c.Encoding.NewDecoder().Bytes(p)
	if err != nil {
		return "", binio.NewError(binio.ErrInvalidEncoding, err.Error(), 0)
	}
	return string(s), nil
}
