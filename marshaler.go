package binfield

import (
	"encoding/binary"
	"reflect"

	"github.com/stenella/binfield/binio"
)

// NewMarshaler returns a Marshaler with the given configuration.
// A nil config means all defaults.
func NewMarshaler(config *Config) *Marshaler {
	c := config.copyAndFill()
	return &Marshaler{
		config: c,
		order:  c.ByteOrder.order(),
		buff:   new(binio.Buffer),
	}
}

// Marshaler encodes values field by field, in declaration order, with no schema besides the
// fields' own names and types.
//
// Marshalers are not safe for concurrent use; use one Marshaler per logical stream.
type Marshaler struct {
	config *Config
	order  binary.ByteOrder
	buff   *binio.Buffer
}

// Marshal encodes v into a fresh buffer, leaving the session's accumulating buffer alone.
// v may be the value or a pointer to it.
func (m *Marshaler) Marshal(v interface{}) ([]byte, error) {
	buff := new(binio.Buffer)
	if err := m.marshal(buff, v); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Append encodes v onto the session's accumulating buffer. Successive calls build one
// contiguous stream of concatenated records; Bytes returns it.
func (m *Marshaler) Append(v interface{}) error {
	return m.marshal(m.buff, v)
}

// Bytes returns the stream accumulated by Append. The slice is only valid until the next Append.
func (m *Marshaler) Bytes() []byte {
	return m.buff.Bytes()
}

// Reset empties the accumulated stream.
func (m *Marshaler) Reset() {
	m.buff.Reset()
}

func (m *Marshaler) marshal(buff *binio.Buffer, v interface{}) error {
	if v == nil {
		return binio.NewError(binio.ErrNilPointer, "cannot marshal nil interface", 0)
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return binio.NewError(binio.ErrNilPointer, "cannot marshal nil pointer", 0)
		}
		val = val.Elem()
	}

	f, err := descriptorOf(val.Type(), m.config)
	if err != nil {
		return err
	}

	// The registry is scoped to this call; nested records and sequence elements share it.
	return m.encodeField(buff, f, val, make(sizeRegistry))
}

func (m *Marshaler) encodeField(buff *binio.Buffer, f *field, v reflect.Value, sizes sizeRegistry) error {
	switch f.kind {
	case kindSize:
		// No bytes yet. The on-wire value is the paired data field's real length,
		// written as its length prefix; whatever the caller put here is discarded.
		sizes.set(f.base, uint64(f.width))

	case kindCString:
		p, err := m.config.encodeText(v.String())
		if err != nil {
			return fieldError(err, f)
		}
		binio.WriteCString(buff, p)

	case kindString:
		p, err := m.config.encodeText(v.String())
		if err != nil {
			return fieldError(err, f)
		}
		return m.writePrefixed(buff, f, p, sizes)

	case kindBytes:
		return m.writePrefixed(buff, f, v.Bytes(), sizes)

	case kindBool:
		binio.WriteBool(buff, v.Bool())

	case kindInt:
		binio.WriteInt(buff, m.order, f.width, v.Int())

	case kindUint:
		binio.WriteUint(buff, m.order, f.width, v.Uint())

	case kindFloat32:
		binio.WriteFloat32(buff, m.order, float32(v.Float()))

	case kindFloat64:
		binio.WriteFloat64(buff, m.order, v.Float())

	case kindStruct:
		for i := range f.fields {
			child := &f.fields[i]
			if err := m.encodeField(buff, child, v.Field(child.index), sizes); err != nil {
				return err
			}
		}

	case kindSlice, kindArray:
		// No element count; a sequence's extent is implicit.
		for i := 0; i < v.Len(); i++ {
			if err := m.encodeField(buff, f.elem, v.Index(i), sizes); err != nil {
				return err
			}
		}
	}

	return nil
}

// writePrefixed writes a length-prefixed payload, taking the prefix width from the registry
// when a size field preceded this one, and from the session default otherwise.
func (m *Marshaler) writePrefixed(buff *binio.Buffer, f *field, payload []byte, sizes sizeRegistry) error {
	width := m.config.DefaultSizeWidth
	if f.name != "" {
		if w, ok := sizes.take(f.base); ok {
			width = int(w)
		}
	}

	if err := binio.WriteLengthPrefixed(buff, m.order, width, payload); err != nil {
		return fieldError(err, f)
	}
	return nil
}

// fieldError names the field a primitive failure occurred on.
func fieldError(err error, f *field) error {
	if f.name == "" {
		return err
	}
	return binio.NewError(err, "field "+f.name, 1)
}
