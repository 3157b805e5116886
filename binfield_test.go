package binfield_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"golang.org/x/text/encoding/charmap"

	"github.com/stenella/binfield"
)

type version struct {
	Major uint16
	Minor uint8
	Patch uint8
}

type server struct {
	ID      uint32
	Name    string
	Version version
}

type serverList struct {
	ID      uint32
	Name    string
	Servers []server
}

var roundTripCases = []struct {
	desc string
	v    interface{}
}{
	{
		desc: "primitives",
		v: struct {
			Flag  bool
			Small int8
			Med   int32
			Big   uint64
			F32   float32
			F64   float64
		}{true, -5, -123456, 1 << 60, 0.5, 3.1415926535},
	},
	{
		desc: "platform ints",
		v: struct {
			A int
			B uint
		}{-42, 42},
	},
	{
		desc: "strings and bytes",
		v: struct {
			Name string
			Data []byte
		}{"hello world", []byte{0, 1, 2, 0xff}},
	},
	{
		desc: "size inference",
		v: struct {
			NameSize uint16
			Name     string
			DataSize uint8
			Data     []byte
		}{4, "food", 3, []byte{7, 8, 9}},
	},
	{
		desc: "c-strings",
		v: struct {
			NameCstr string
			TagCstr  string
		}{"terminator", ""},
	},
	{
		desc: "nested records",
		v: struct {
			Outer uint8
			Inner version
		}{1, version{Major: 2, Minor: 3, Patch: 4}},
	},
	{
		desc: "fixed arrays",
		v: struct {
			Values [4]uint16
			Names  [2]string
		}{[4]uint16{1, 2, 3, 4}, [2]string{"a", "b"}},
	},
	{
		desc: "trailing sequence",
		v: struct {
			Count uint8
			Tail  []uint32
		}{3, []uint32{10, 20, 30}},
	},
	{
		desc: "empty trailing sequence",
		v: struct {
			Count uint8
			Tail  []uint32
		}{0, []uint32{}},
	},
	{
		desc: "server list",
		v: serverList{
			ID:   1,
			Name: "cluster",
			Servers: []server{
				{ID: 10, Name: "alpha", Version: version{Major: 1, Minor: 2, Patch: 3}},
				{ID: 20, Name: "beta", Version: version{Major: 4, Minor: 5, Patch: 6}},
			},
		},
	},
}

func TestRoundTrip(t *testing.T) {
	configs := []*binfield.Config{
		nil,
		{ByteOrder: binfield.BigEndian},
		{ByteOrder: binfield.LittleEndian},
		{ByteOrder: binfield.BigEndian, DefaultSizeWidth: 2},
	}

	for _, config := range configs {
		order := binfield.NativeEndian
		if config != nil {
			order = config.ByteOrder
		}

		for _, tC := range roundTripCases {
			t.Run(fmt.Sprintf("%v/%v", order, tC.desc), func(t *testing.T) {
				data, err := binfield.NewMarshaler(config).Marshal(tC.v)
				if err != nil {
					t.Fatal(err)
				}

				decoded := reflect.New(reflect.TypeOf(tC.v))
				if err := binfield.NewUnmarshaler(data, config).Unmarshal(decoded.Interface()); err != nil {
					t.Fatal(err)
				}

				td.Cmp(t, decoded.Elem().Interface(), tC.v)
			})
		}
	}
}

func TestRoundTripCharmap(t *testing.T) {
	type record struct {
		NameSize uint8
		Name     string
		TagCstr  string
	}

	config := &binfield.Config{ByteOrder: binfield.BigEndian, Encoding: charmap.Windows1252}
	in := record{NameSize: 4, Name: "café", TagCstr: "über"}

	data, err := binfield.NewMarshaler(config).Marshal(&in)
	if err != nil {
		t.Fatal(err)
	}

	// 1 size byte + 4 single-byte chars + 4 single-byte chars + terminator.
	if len(data) != 10 {
		t.Errorf("wanted 10 bytes on the wire, got %v: % x", len(data), data)
	}

	var got record
	if err := binfield.NewUnmarshaler(data, config).Unmarshal(&got); err != nil {
		t.Fatal(err)
	}
	td.Cmp(t, got, in)
}

func TestRoundTripTopLevelPrimitive(t *testing.T) {
	data, err := binfield.NewMarshaler(&binfield.Config{ByteOrder: binfield.BigEndian}).Marshal(uint32(0x567890ab))
	if err != nil {
		t.Fatal(err)
	}

	var got uint32
	if err := binfield.NewUnmarshaler(data, &binfield.Config{ByteOrder: binfield.BigEndian}).Unmarshal(&got); err != nil {
		t.Fatal(err)
	}
	td.Cmp(t, got, uint32(0x567890ab))
}

func BenchmarkMarshal(b *testing.B) {
	v := roundTripCases[len(roundTripCases)-1].v
	m := binfield.NewMarshaler(&binfield.Config{ByteOrder: binfield.BigEndian})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	config := &binfield.Config{ByteOrder: binfield.BigEndian}
	data, err := binfield.NewMarshaler(config).Marshal(roundTripCases[len(roundTripCases)-1].v)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var got serverList
		if err := binfield.NewUnmarshaler(data, config).Unmarshal(&got); err != nil {
			b.Fatal(err)
		}
	}
}
