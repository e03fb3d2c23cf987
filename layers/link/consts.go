package link

import (
	"net"

	gplayers "github.com/google/gopacket/layers"
)

const (
	// HeaderLength is the Ethernet header length.
	HeaderLength = 14

	// AddressLength is the length of a MAC address.
	AddressLength = 6

	// EtherTypeIPv4 is the EtherType of frames carrying IPv4 datagrams.
	EtherTypeIPv4 = uint16(gplayers.EthernetTypeIPv4)
)

// BroadcastMACAddress is the MAC address used for broadcast in a local network.
func BroadcastMACAddress() net.HardwareAddr {
	return net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}
