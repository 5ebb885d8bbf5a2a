package persistence

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

var (
	// ErrBigEndian is returned when running on big-endian systems.
	// Column files store native little-endian pages, and zero-copy loads
	// reinterpret them directly.
	ErrBigEndian = errors.New("big-endian systems are not supported")

	// ErrUnalignedPage is returned when a memory-mapped value page is not
	// aligned for its element width.
	ErrUnalignedPage = errors.New("unaligned value page")
)

// init performs startup validation of platform requirements.
func init() {
	if !isLittleEndian() {
		panic(fmt.Sprintf("colgo/persistence: %v (GOOS=%s GOARCH=%s)", ErrBigEndian, runtime.GOOS, runtime.GOARCH))
	}
}

// isLittleEndian checks if the system is little-endian.
func isLittleEndian() bool {
	var test uint16 = 0x0001
	firstByte := *(*byte)(unsafe.Pointer(&test))
	return firstByte == 1
}

// validatePageAlignment checks that a mapped value page can be
// reinterpreted as elements of the given width.
func validatePageAlignment(page []byte, width int) error {
	if len(page) == 0 {
		return nil
	}
	ptr := uintptr(unsafe.Pointer(&page[0]))
	if ptr%uintptr(width) != 0 {
		return fmt.Errorf("%w: page at address 0x%x for width %d", ErrUnalignedPage, ptr, width)
	}
	return nil
}
