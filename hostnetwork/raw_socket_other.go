//go:build !linux

package hostnetwork

import (
	"errors"
)

var errUnsupportedPlatform = errors.New("raw link-layer sockets are only supported on linux")

// OpenPacketSocket always fails outside linux.
func OpenPacketSocket() (RawSocket, error) {
	return nil, errUnsupportedPlatform
}

func netlinkInterfaceIndex(name string) (int, error) {
	return 0, errUnsupportedPlatform
}
