package binfield

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/stenella/binfield/binio"
)

// StructTag is the struct tag read by binfield. Its value replaces the field's declared name
// for classification and size pairing; the value "-" excludes the field entirely.
const StructTag = "binfield"

// fieldKind is the closed set of field classifications. A field's kind is resolved once,
// from its declared name and type, when the descriptor for its record is built.
// Suffix-driven kinds take precedence over type-driven kinds.
type fieldKind uint8

const (
	kindBool fieldKind = iota
	kindInt            // signed integer, fixed width
	kindUint           // unsigned integer, fixed width
	kindFloat32
	kindFloat64
	kindSize    // integer named with the size suffix; pairs with the next same-named field
	kindCString // string named with the c-string suffix; null-terminated, no prefix
	kindString  // length-prefixed string
	kindBytes   // length-prefixed []byte
	kindStruct  // nested record, fields in declaration order
	kindSlice   // sequence with no encoded element count
	kindArray   // sequence with extent fixed by the type
)

// field describes how one value is laid out on the wire. A field tree is built once per
// (type, suffix configuration) pair and never mutated afterwards, so it is shared freely
// between sessions.
type field struct {
	name  string // declared name, or the tag override; empty for sequence elements and top-level values
	base  string // name with the size or c-string suffix stripped; pairs size fields with data fields
	index int    // struct field index within the parent record
	kind  fieldKind

	width  int  // byte width of kindInt, kindUint and kindSize fields
	signed bool // kindSize only; whether the declared integer type is signed

	fields []field // kindStruct children, in declaration order
	elem   *field  // kindSlice and kindArray element
	length int     // kindArray extent
}

// descID keys the descriptor cache. Classification depends on the type and both suffixes,
// and on nothing else in the Config.
type descID struct {
	ty         reflect.Type
	sizeSuffix string
	cstrSuffix string
}

var descCache sync.Map // descID -> *field

// descriptorOf returns the cached field tree for ty, building it on first use.
// It is safe for concurrent use; sessions on separate goroutines share the cache.
func descriptorOf(ty reflect.Type, config *Config) (*field, error) {
	id := descID{ty: ty, sizeSuffix: config.SizeSuffix, cstrSuffix: config.CstrSuffix}
	if d, ok := descCache.Load(id); ok {
		return d.(*field), nil
	}

	f, err := newField("", ty, config)
	if err != nil {
		return nil, err
	}

	descCache.Store(id, f)
	return f, nil
}

// newField classifies a single field, recursing into element and record types.
func newField(name string, ty reflect.Type, config *Config) (*field, error) {
	f := &field{name: name, base: name}

	switch {
	case name != "" && strings.HasSuffix(name, config.SizeSuffix) && isInteger(ty.Kind()):
		f.kind = kindSize
		f.base = strings.TrimSuffix(name, config.SizeSuffix)
		f.width = intWidth(ty.Kind())
		f.signed = isSigned(ty.Kind())
		return f, nil

	case name != "" && strings.HasSuffix(name, config.CstrSuffix) && ty.Kind() == reflect.String:
		f.kind = kindCString
		f.base = strings.TrimSuffix(name, config.CstrSuffix)
		return f, nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		f.kind = kindBool

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		f.kind = kindInt
		f.width = intWidth(ty.Kind())

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		f.kind = kindUint
		f.width = intWidth(ty.Kind())

	case reflect.Float32:
		f.kind = kindFloat32

	case reflect.Float64:
		f.kind = kindFloat64

	case reflect.String:
		f.kind = kindString

	case reflect.Slice:
		if ty.Elem().Kind() == reflect.Uint8 {
			f.kind = kindBytes
			return f, nil
		}

		f.kind = kindSlice
		elem, err := newField("", ty.Elem(), config)
		if err != nil {
			return nil, err
		}
		f.elem = elem

	case reflect.Array:
		f.kind = kindArray
		f.length = ty.Len()
		elem, err := newField("", ty.Elem(), config)
		if err != nil {
			return nil, err
		}
		f.elem = elem

	case reflect.Struct:
		f.kind = kindStruct
		for i := 0; i < ty.NumField(); i++ {
			sf := ty.Field(i)

			fname := sf.Name
			if tag, ok := sf.Tag.Lookup(StructTag); ok {
				if tag == "-" {
					continue
				}
				fname = tag
			}

			if sf.PkgPath != "" {
				// unexported
				continue
			}

			child, err := newField(fname, sf.Type, config)
			if err != nil {
				return nil, err
			}
			child.index = i
			f.fields = append(f.fields, *child)
		}

	default:
		return nil, binio.NewError(binio.ErrBadType, fmt.Sprintf("cannot marshal %v", ty), 0)
	}

	return f, nil
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return true
	}
	return false
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return true
	}
	return false
}

// intWidth returns the on-wire width of an integer kind.
// int and uint encode as 8 bytes on every platform so the wire format doesn't depend on the host.
func intWidth(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return binio.Width8
	case reflect.Int16, reflect.Uint16:
		return binio.Width16
	case reflect.Int32, reflect.Uint32:
		return binio.Width32
	default:
		return binio.Width64
	}
}
