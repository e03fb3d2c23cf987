//go:build linux

package hostnetwork

import (
	"net"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

type packetSocket struct {
	fd int
}

// OpenPacketSocket opens an AF_PACKET raw socket capturing all protocols.
// It requires root or CAP_NET_RAW.
func OpenPacketSocket() (RawSocket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, err
	}
	return &packetSocket{fd: fd}, nil
}

func (p *packetSocket) InterfaceIndex(name string) (int, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	if err := unix.IoctlIfreq(p.fd, unix.SIOCGIFINDEX, ifr); err != nil {
		return 0, err
	}
	return int(ifr.Uint32()), nil
}

func (p *packetSocket) SendTo(b []byte, ifindex int, dstMACAddress net.HardwareAddr) error {
	sa := &unix.SockaddrLinklayer{
		Ifindex: ifindex,
		Halen:   uint8(len(dstMACAddress)),
	}
	copy(sa.Addr[:], dstMACAddress)
	return unix.Sendto(p.fd, b, 0, sa)
}

func (p *packetSocket) Close() error {
	if p.fd < 0 {
		return nil
	}
	fd := p.fd
	p.fd = -1
	return unix.Close(fd)
}

// htons converts a 16-bit integer from host to network byte order.
func htons(i uint16) uint16 {
	return (i<<8)&0xff00 | i>>8
}

func netlinkInterfaceIndex(name string) (int, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return 0, err
	}
	return link.Attrs().Index, nil
}
