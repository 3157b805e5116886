package binfield

import (
	"encoding/binary"
	"unsafe"
)

// hostOrder is the byte order of the machine we're running on, probed once at init.
var hostOrder = func() binary.ByteOrder {
	var x uint16 = 1
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()
