// Package bitutil provides bit manipulation helpers for validity bitmaps.
//
// Bitmaps follow the standard columnar convention: one bit per element,
// least-significant bit first within each byte, bit set meaning the element
// is valid (not null).
package bitutil

import "math/bits"

// BytesForBits returns the number of bytes needed to hold n bits.
func BytesForBits(n int) int {
	return (n + 7) / 8
}

// IsSet reports whether bit i of buf is set.
func IsSet(buf []byte, i int) bool {
	return buf[i/8]&(1<<(uint(i)%8)) != 0
}

// Set sets bit i of buf.
func Set(buf []byte, i int) {
	buf[i/8] |= 1 << (uint(i) % 8)
}

// Clear clears bit i of buf.
func Clear(buf []byte, i int) {
	buf[i/8] &^= 1 << (uint(i) % 8)
}

// CountSetBits counts the set bits in buf within [offset, offset+length).
func CountSetBits(buf []byte, offset, length int) int {
	if length == 0 {
		return 0
	}

	count := 0
	i := offset
	end := offset + length

	// Leading partial byte.
	for ; i < end && i%8 != 0; i++ {
		if IsSet(buf, i) {
			count++
		}
	}
	// Whole bytes.
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(buf[i/8])
	}
	// Trailing partial byte.
	for ; i < end; i++ {
		if IsSet(buf, i) {
			count++
		}
	}
	return count
}
