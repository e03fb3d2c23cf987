package hostnetwork

import (
	"net"
)

type (
	// RawSocket is a link-layer socket that sends complete Ethernet
	// frames, bypassing the host protocol stack. One is opened and
	// closed by every Transmitter.Send().
	RawSocket interface {
		// InterfaceIndex asks the kernel for the index of a network
		// interface through the socket (SIOCGIFINDEX).
		InterfaceIndex(name string) (int, error)

		// SendTo transmits b as is on the given interface towards the
		// given link-layer address.
		SendTo(b []byte, ifindex int, dstMACAddress net.HardwareAddr) error

		Close() error
	}

	// SocketOpener opens a RawSocket.
	SocketOpener func() (RawSocket, error)
)
