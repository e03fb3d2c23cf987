// Package checksum implements the Internet checksum (RFC 1071) used by
// both the IPv4 header and the UDP segment.
package checksum

// Sum adds the region as big-endian 16-bit words into a 32-bit
// accumulator. A trailing odd byte is taken as the high byte of a
// final word whose low byte is zero.
//
// Sums of adjacent regions can be added together as long as every
// region but the last has an even length.
func Sum(b []byte) uint32 {
	var sum uint32
	n := len(b)
	for i := 0; i+1 < n; i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if n%2 == 1 {
		sum += uint32(b[n-1]) << 8
	}
	return sum
}

// Fold folds the carries in bits 16 and above back into the low
// 16 bits until no carry remains.
func Fold(sum uint32) uint16 {
	for sum>>16 != 0 {
		sum = (sum & 0xffff) + (sum >> 16)
	}
	return uint16(sum)
}

// Compute turns an accumulated Sum into the value of a checksum field.
// If the folded sum is 0xffff it is returned unchanged, otherwise its
// one's complement is returned.
//
// The result is a host-order number; it is written in network order
// by whoever encodes the header.
func Compute(sum uint32) uint16 {
	folded := Fold(sum)
	if folded == 0xffff {
		return folded
	}
	return ^folded
}

// Valid tells whether a region summed with its checksum field filled
// in is consistent, i.e. the complement of the folded sum is zero.
func Valid(sum uint32) bool {
	return ^Fold(sum) == 0
}
