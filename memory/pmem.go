// Package memory models the physical memory of the emulated machine: a
// single little-endian byte array mapped at a base address.
package memory

import (
	"errors"
	"io"

	"golang.org/x/exp/constraints"

	"github.com/ezrec/sdb/translate"
)

var f = translate.From

const (
	MBASE = 0x80000000 // Default physical memory base.
	MSIZE = 0x8000000  // Default physical memory size.
)

var (
	ErrAccessSize = errors.New(f("access size must be 1, 2 or 4"))
)

// ErrOutOfBound indicates an access outside physical memory.
type ErrOutOfBound struct {
	Addr  uint32
	Size  int
	Base  uint32
	Limit uint32
}

func (err ErrOutOfBound) Error() string {
	return f("address = 0x%08x is out of bound of pmem [0x%08x, 0x%08x]",
		err.Addr, err.Base, err.Limit)
}

func (err ErrOutOfBound) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBound)
	return
}

// ErrImageTooLarge indicates an image that does not fit in physical memory.
type ErrImageTooLarge struct {
	Size     int
	Capacity int
}

func (err ErrImageTooLarge) Error() string {
	return f("image of %d bytes exceeds physical memory of %d bytes", err.Size, err.Capacity)
}

// Pmem is physical memory.
type Pmem struct {
	Base uint32 // Guest address of Data[0].
	Data []byte // Memory contents.
}

// New creates a physical memory of size bytes at base.
func New(base uint32, size uint32) (pm *Pmem) {
	pm = &Pmem{
		Base: base,
		Data: make([]byte, size),
	}

	return
}

// Limit returns the last valid address.
func (pm *Pmem) Limit() uint32 {
	return pm.Base + uint32(len(pm.Data)) - 1
}

// InPmem returns true if addr is inside physical memory.
func (pm *Pmem) InPmem(addr uint32) bool {
	return pm.IsReadable(addr, 1)
}

// IsReadable returns true if all of [addr, addr+size) is inside physical
// memory.
func (pm *Pmem) IsReadable(addr uint32, size int) bool {
	if size < 0 || addr < pm.Base {
		return false
	}
	offset := uint64(addr - pm.Base)
	return offset+uint64(size) <= uint64(len(pm.Data))
}

func (pm *Pmem) check(addr uint32, size int) (offset int, err error) {
	switch size {
	case 1, 2, 4:
	default:
		err = ErrAccessSize
		return
	}

	if !pm.IsReadable(addr, size) {
		err = ErrOutOfBound{Addr: addr, Size: size, Base: pm.Base, Limit: pm.Limit()}
		return
	}

	offset = int(addr - pm.Base)
	return
}

// Read returns size bytes at addr as a little-endian word.
func (pm *Pmem) Read(addr uint32, size int) (value uint32, err error) {
	offset, err := pm.check(addr, size)
	if err != nil {
		return
	}

	data := pm.Data[offset : offset+size]
	switch size {
	case 1:
		value = uint32(load[uint8](data))
	case 2:
		value = uint32(load[uint16](data))
	case 4:
		value = load[uint32](data)
	}

	return
}

// ReadWord returns the 32-bit little-endian word at addr.
func (pm *Pmem) ReadWord(addr uint32) (value uint32, err error) {
	return pm.Read(addr, 4)
}

// Write stores the low size bytes of value at addr, little-endian.
func (pm *Pmem) Write(addr uint32, size int, value uint32) (err error) {
	offset, err := pm.check(addr, size)
	if err != nil {
		return
	}

	data := pm.Data[offset : offset+size]
	switch size {
	case 1:
		store(data, uint8(value))
	case 2:
		store(data, uint16(value))
	case 4:
		store(data, value)
	}

	return
}

// Load copies an image to the start of physical memory.
func (pm *Pmem) Load(image io.Reader) (size int, err error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return
	}

	if len(data) > len(pm.Data) {
		err = ErrImageTooLarge{Size: len(data), Capacity: len(pm.Data)}
		return
	}

	size = copy(pm.Data, data)
	return
}

// LoadWords copies 32-bit words to the start of physical memory.
func (pm *Pmem) LoadWords(words []uint32) (size int, err error) {
	if len(words)*4 > len(pm.Data) {
		err = ErrImageTooLarge{Size: len(words) * 4, Capacity: len(pm.Data)}
		return
	}

	for n, word := range words {
		store(pm.Data[n*4:n*4+4], word)
	}

	size = len(words) * 4
	return
}

// load decodes a little-endian value from the front of data.
func load[T constraints.Unsigned](data []byte) (value T) {
	for n := range data {
		value |= T(data[n]) << (8 * n)
	}
	return
}

// store encodes a little-endian value to the front of data.
func store[T constraints.Unsigned](data []byte, value T) {
	for n := range data {
		data[n] = byte(value >> (8 * n))
	}
}
