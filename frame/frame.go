package frame

import (
	"fmt"
	"net"

	"github.com/matheuscscp/udp-inject/layers/link"
	"github.com/matheuscscp/udp-inject/layers/network"
	"github.com/matheuscscp/udp-inject/layers/transport"
	pkgnet "github.com/matheuscscp/udp-inject/pkg/net"
)

const (
	// InterfaceNameLength is the longest interface name the kernel
	// accepts (IFNAMSIZ minus the terminating NUL).
	InterfaceNameLength = 15

	// DefaultIPAddress is the src and dst IP address of a new frame.
	DefaultIPAddress = "171.0.0.1"
)

type (
	// Frame is an outbound Ethernet+IPv4+UDP packet. It owns all the
	// packet state: header fields, the payload buffer and the name of
	// the interface it will be sent through.
	//
	// The IPv4 total length and the UDP length are always derived from
	// the payload length, and the checksums are only computed by Seal().
	//
	// A Frame is not safe for concurrent use.
	Frame struct {
		dstMAC      [link.AddressLength]byte
		srcMAC      [link.AddressLength]byte
		srcIP       [network.AddressLength]byte
		dstIP       [network.AddressLength]byte
		ttl         uint8
		ipChecksum  uint16
		srcPort     uint16
		dstPort     uint16
		udpChecksum uint16
		payload     []byte
		capacity    int
		policy      OverflowPolicy
		iface       string
		state       State
		err         error
	}

	// Config contains the header fields of a Frame as text, the way
	// they are written in a YAML file. Empty values keep the defaults.
	// A nil Capacity keeps transport.MaxSizeData.
	Config struct {
		Interface      string `yaml:"interface"`
		SrcIPAddress   string `yaml:"srcIPAddress"`
		DstIPAddress   string `yaml:"dstIPAddress"`
		SrcPort        uint16 `yaml:"srcPort"`
		DstPort        uint16 `yaml:"dstPort"`
		SrcMACAddress  string `yaml:"srcMACAddress"`
		DstMACAddress  string `yaml:"dstMACAddress"`
		StrictOverflow bool   `yaml:"strictOverflow"`
		Capacity       *int   `yaml:"capacity"`
	}
)

// New creates a Frame with the dst MAC address set to broadcast, a zero
// src MAC address, both IP addresses set to DefaultIPAddress, zero ports
// and an empty payload.
func New(opts ...Option) *Frame {
	f := &Frame{
		ttl:      network.DefaultTTL,
		capacity: transport.MaxSizeData,
	}
	copy(f.dstMAC[:], link.BroadcastMACAddress())
	f.srcIP, _ = pkgnet.ParseIPv4(DefaultIPAddress)
	f.dstIP = f.srcIP
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromConfig creates a Frame from config.
func NewFromConfig(conf Config, opts ...Option) (*Frame, error) {
	if conf.StrictOverflow {
		opts = append(opts, WithOverflowPolicy(OverflowReject))
	}
	if conf.Capacity != nil {
		opts = append(opts, WithCapacity(*conf.Capacity))
	}
	f := New(opts...)
	if err := f.Apply(conf); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply sets every non-empty field of conf on the frame.
func (f *Frame) Apply(conf Config) error {
	setters := []struct {
		name  string
		value string
		set   func(string) error
	}{
		{"src ip address", conf.SrcIPAddress, f.SetSrcIP},
		{"dst ip address", conf.DstIPAddress, f.SetDstIP},
		{"src mac address", conf.SrcMACAddress, f.SetSrcMAC},
		{"dst mac address", conf.DstMACAddress, f.SetDstMAC},
		{"interface", conf.Interface, f.SetInterface},
	}
	for _, s := range setters {
		if s.value == "" {
			continue
		}
		if err := s.set(s.value); err != nil {
			return fmt.Errorf("error setting %s: %w", s.name, err)
		}
	}
	if conf.SrcPort != 0 {
		if err := f.SetSrcPort(conf.SrcPort); err != nil {
			return err
		}
	}
	if conf.DstPort != 0 {
		if err := f.SetDstPort(conf.DstPort); err != nil {
			return err
		}
	}
	return nil
}

// mutate must be called before every change of packet state.
func (f *Frame) mutate() error {
	if f.state.Terminal() {
		return ErrFrameFinalized
	}
	f.state = Configuring
	return nil
}

// SetSrcPort sets the UDP src port. Every value is accepted.
func (f *Frame) SetSrcPort(port uint16) error {
	if err := f.mutate(); err != nil {
		return err
	}
	f.srcPort = port
	return nil
}

// SetDstPort sets the UDP dst port. Every value is accepted.
func (f *Frame) SetDstPort(port uint16) error {
	if err := f.mutate(); err != nil {
		return err
	}
	f.dstPort = port
	return nil
}

// SetSrcIP parses and sets the IPv4 src address. On error the previous
// address is kept.
func (f *Frame) SetSrcIP(s string) error {
	return f.setIP(&f.srcIP, s)
}

// SetDstIP parses and sets the IPv4 dst address. On error the previous
// address is kept.
func (f *Frame) SetDstIP(s string) error {
	return f.setIP(&f.dstIP, s)
}

func (f *Frame) setIP(dst *[network.AddressLength]byte, s string) error {
	ip, err := pkgnet.ParseIPv4(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	if err := f.mutate(); err != nil {
		return err
	}
	*dst = ip
	return nil
}

// SetSrcMAC parses and sets the Ethernet src address. On error the
// previous address is kept.
func (f *Frame) SetSrcMAC(s string) error {
	return f.setMAC(&f.srcMAC, s)
}

// SetDstMAC parses and sets the Ethernet dst address. On error the
// previous address is kept.
func (f *Frame) SetDstMAC(s string) error {
	return f.setMAC(&f.dstMAC, s)
}

func (f *Frame) setMAC(dst *[link.AddressLength]byte, s string) error {
	mac, err := pkgnet.ParseMAC(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	if err := f.mutate(); err != nil {
		return err
	}
	*dst = mac
	return nil
}

// SetInterface binds the frame to an outbound interface. Names longer
// than InterfaceNameLength bytes are truncated.
func (f *Frame) SetInterface(name string) error {
	if err := f.mutate(); err != nil {
		return err
	}
	if len(name) > InterfaceNameLength {
		name = name[:InterfaceNameLength]
	}
	f.iface = name
	return nil
}

func (f *Frame) SrcPort() uint16 { return f.srcPort }
func (f *Frame) DstPort() uint16 { return f.dstPort }
func (f *Frame) TTL() uint8      { return f.ttl }

func (f *Frame) SrcIP() net.IP { return net.IPv4(f.srcIP[0], f.srcIP[1], f.srcIP[2], f.srcIP[3]).To4() }
func (f *Frame) DstIP() net.IP { return net.IPv4(f.dstIP[0], f.dstIP[1], f.dstIP[2], f.dstIP[3]).To4() }

func (f *Frame) SrcMAC() net.HardwareAddr { return append(net.HardwareAddr(nil), f.srcMAC[:]...) }
func (f *Frame) DstMAC() net.HardwareAddr { return append(net.HardwareAddr(nil), f.dstMAC[:]...) }

// Interface returns the name of the outbound interface.
func (f *Frame) Interface() string {
	return f.iface
}

// IPTotalLength returns the IPv4 total length field.
func (f *Frame) IPTotalLength() uint16 {
	return uint16(network.HeaderLength + transport.UDPHeaderLength + len(f.payload))
}

// UDPLength returns the UDP length field.
func (f *Frame) UDPLength() uint16 {
	return uint16(transport.UDPHeaderLength + len(f.payload))
}

// IPChecksum returns the IPv4 header checksum computed by the last Seal().
func (f *Frame) IPChecksum() uint16 {
	return f.ipChecksum
}

// UDPChecksum returns the UDP checksum computed by the last Seal().
func (f *Frame) UDPChecksum() uint16 {
	return f.udpChecksum
}

// State returns the lifecycle state.
func (f *Frame) State() State {
	return f.state
}

// Err returns the reason of a Failed state.
func (f *Frame) Err() error {
	return f.err
}

// Finish moves the frame to a terminal state: Sent when err is nil,
// Failed otherwise.
func (f *Frame) Finish(err error) {
	if err != nil {
		f.state, f.err = Failed, err
		return
	}
	f.state, f.err = Sent, nil
}

// PseudoHeader builds the pseudo-header folded into the UDP checksum
// from the current field values.
func (f *Frame) PseudoHeader() transport.PseudoHeader {
	return transport.NewUDPPseudoHeader(f.srcIP, f.dstIP, f.UDPLength())
}
