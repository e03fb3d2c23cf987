package transport

import (
	"github.com/matheuscscp/udp-inject/layers/network"
)

const (
	// UDPHeaderLength is the UDP header length.
	UDPHeaderLength = 8

	// MaxSizeData is the maximum number of bytes that are allowed on the
	// payload of a UDP segment carried by a single IPv4 datagram.
	MaxSizeData = network.MaxTotalLength - network.HeaderLength - UDPHeaderLength
)
