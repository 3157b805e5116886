package binfield

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/stenella/binfield/binio"
)

// NewUnmarshaler returns an Unmarshaler decoding from data.
// A nil config means all defaults. The data is not copied; it must not be modified
// while the Unmarshaler is in use.
func NewUnmarshaler(data []byte, config *Config) *Unmarshaler {
	c := config.copyAndFill()
	return &Unmarshaler{
		config: c,
		order:  c.ByteOrder.order(),
		buff:   binio.NewBuffer(data),
	}
}

// Unmarshaler decodes values field by field, mirroring Marshaler's classification rules
// against an input buffer and a cursor.
//
// The cursor persists across Unmarshal calls, so consecutive calls on one session parse
// concatenated records from one stream. Unmarshalers are not safe for concurrent use;
// use one Unmarshaler per logical stream.
type Unmarshaler struct {
	config *Config
	order  binary.ByteOrder
	buff   *binio.Buffer
}

// Len returns the number of unread bytes.
func (u *Unmarshaler) Len() int {
	return u.buff.Len()
}

// Offset returns the cursor position; the count of bytes consumed so far.
func (u *Unmarshaler) Offset() int {
	return u.buff.Offset()
}

// Unmarshal decodes one record into v, resuming at the cursor. v must be a non-nil pointer.
//
// A failure aborts the whole call: v is left untouched rather than partially populated.
// The cursor, however, keeps whatever the call consumed before failing; it is never rewound.
func (u *Unmarshaler) Unmarshal(v interface{}) error {
	if v == nil {
		return binio.NewError(binio.ErrNilPointer, "cannot unmarshal into nil interface", 0)
	}

	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return binio.NewError(binio.ErrBadType, fmt.Sprintf("unmarshaled values must be passed by reference (pointer), got %v", val.Type()), 0)
	}
	if val.IsNil() {
		return binio.NewError(binio.ErrNilPointer, "cannot unmarshal into nil pointer", 0)
	}
	val = val.Elem()

	f, err := descriptorOf(val.Type(), u.config)
	if err != nil {
		return err
	}

	// Decode into a fresh value so a mid-record failure leaves v untouched.
	decoded := reflect.New(val.Type()).Elem()
	if err := u.decodeField(f, decoded, make(sizeRegistry)); err != nil {
		return err
	}

	val.Set(decoded)
	return nil
}

func (u *Unmarshaler) decodeField(f *field, v reflect.Value, sizes sizeRegistry) error {
	switch f.kind {
	case kindSize:
		// The decoded integer is both this field's value and the byte count of the
		// next field sharing its base name.
		if f.signed {
			n, err := binio.ReadInt(u.buff, u.order, f.width)
			if err != nil {
				return fieldError(err, f)
			}
			if n < 0 {
				return fieldError(binio.NewError(binio.ErrSizeOverflow,
					fmt.Sprintf("size field decoded a negative count (%v)", n), 0), f)
			}
			sizes.set(f.base, uint64(n))
			v.SetInt(n)
			return nil
		}

		n, err := binio.ReadUint(u.buff, u.order, f.width)
		if err != nil {
			return fieldError(err, f)
		}
		sizes.set(f.base, n)
		v.SetUint(n)

	case kindCString:
		p, err := binio.ReadCString(u.buff)
		if err != nil {
			return fieldError(err, f)
		}
		s, err := u.config.decodeText(p)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetString(s)

	case kindString:
		p, err := u.readPrefixed(f, sizes)
		if err != nil {
			return err
		}
		s, err := u.config.decodeText(p)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetString(s)

	case kindBytes:
		p, err := u.readPrefixed(f, sizes)
		if err != nil {
			return err
		}
		v.SetBytes(append([]byte(nil), p...))

	case kindBool:
		x, err := binio.ReadBool(u.buff)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetBool(x)

	case kindInt:
		x, err := binio.ReadInt(u.buff, u.order, f.width)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetInt(x)

	case kindUint:
		x, err := binio.ReadUint(u.buff, u.order, f.width)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetUint(x)

	case kindFloat32:
		x, err := binio.ReadFloat32(u.buff, u.order)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetFloat(float64(x))

	case kindFloat64:
		x, err := binio.ReadFloat64(u.buff, u.order)
		if err != nil {
			return fieldError(err, f)
		}
		v.SetFloat(x)

	case kindStruct:
		for i := range f.fields {
			child := &f.fields[i]
			if err := u.decodeField(child, v.Field(child.index), sizes); err != nil {
				return err
			}
		}

	case kindArray:
		for i := 0; i < f.length; i++ {
			if err := u.decodeField(f.elem, v.Index(i), sizes); err != nil {
				return err
			}
		}

	case kindSlice:
		// A sequence carries no element count, so elements are decoded until the buffer is
		// exhausted. This only terminates correctly when the sequence is the last field of
		// the outermost record; anything after it would be consumed as elements.
		s := reflect.MakeSlice(v.Type(), 0, 0)
		elemTy := v.Type().Elem()
		for u.buff.Len() > 0 {
			before := u.buff.Offset()
			ev := reflect.New(elemTy).Elem()
			if err := u.decodeField(f.elem, ev, sizes); err != nil {
				return err
			}
			if u.buff.Offset() == before {
				// An element that occupies no bytes would decode forever.
				return fieldError(binio.NewError(binio.ErrBadType,
					fmt.Sprintf("sequence element of type %v occupies no bytes", elemTy), 0), f)
			}
			s = reflect.Append(s, ev)
		}
		v.Set(s)
	}

	return nil
}

// readPrefixed reads a length-delimited payload. If a size field preceded this one, its decoded
// value is the byte count and no prefix is read from the stream; the count already crossed the
// wire as the size field. Otherwise a prefix of the session's default width is read first.
func (u *Unmarshaler) readPrefixed(f *field, sizes sizeRegistry) ([]byte, error) {
	if f.name != "" {
		if n, ok := sizes.take(f.base); ok {
			if n > uint64(u.buff.Len()) {
				return nil, fieldError(binio.NewError(binio.ErrInsufficientData,
					fmt.Sprintf("size field wants %v bytes but only %v remain", n, u.buff.Len()), 0), f)
			}
			return u.buff.Next(int(n))
		}
	}

	p, err := binio.ReadLengthPrefixed(u.buff, u.order, u.config.DefaultSizeWidth)
	if err != nil {
		return nil, fieldError(err, f)
	}
	return p, nil
}
