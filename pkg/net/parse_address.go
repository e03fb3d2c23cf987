package pkgnet

import (
	"fmt"
	"net"
	"net/netip"
)

// ParseIPv4 parses an IPv4 address strictly in dotted-quad form.
// Unlike inet_addr(3) there is no failure sentinel, so 255.255.255.255
// is an ordinary address. Shorthand ("10.1"), octal-looking octets
// ("010.0.0.1") and IPv6 forms, including IPv4-mapped ones, are
// rejected.
func ParseIPv4(s string) ([4]byte, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return [4]byte{}, err
	}
	if !addr.Is4() {
		return [4]byte{}, fmt.Errorf("not an IPv4 address: %s", s)
	}
	return addr.As4(), nil
}

// ParseMAC uses net.ParseMAC() but returns an error if the address
// is not a 48-bit Ethernet address.
func ParseMAC(s string) ([6]byte, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return [6]byte{}, err
	}
	var mac [6]byte
	if len(hw) != len(mac) {
		return [6]byte{}, fmt.Errorf("not a 48-bit MAC address. want %d bytes, got %d", len(mac), len(hw))
	}
	copy(mac[:], hw)
	return mac, nil
}
