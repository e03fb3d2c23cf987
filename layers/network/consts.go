package network

import (
	gplayers "github.com/google/gopacket/layers"
)

const (
	// Version is the version of the IP protocol
	Version = 4

	// IHL is the IPv4 header length in 32-bit words.
	IHL = HeaderLength / 4

	// HeaderLength is the IPv4 header length.
	HeaderLength = 20

	// AddressLength is the length of an IPv4 address.
	AddressLength = 4

	// DefaultTTL is the time-to-live of outbound datagrams.
	DefaultTTL = 64

	// ProtocolUDP is the IP protocol number of UDP.
	ProtocolUDP = uint8(gplayers.IPProtocolUDP)

	// MaxTotalLength is the largest value the 16-bit total length
	// field can hold.
	MaxTotalLength = (1 << 16) - 1
)
