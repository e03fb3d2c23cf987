package transport

import (
	"encoding/binary"

	"github.com/matheuscscp/udp-inject/layers/network"
	"github.com/matheuscscp/udp-inject/pkg/checksum"
)

// PseudoHeaderLength is the length of an encoded PseudoHeader.
const PseudoHeaderLength = 2*network.AddressLength + 4

// PseudoHeader is the IPv4 pseudo-header folded into the UDP checksum.
// It is never transmitted.
type PseudoHeader struct {
	SrcIP     [network.AddressLength]byte
	DstIP     [network.AddressLength]byte
	Protocol  uint8
	UDPLength uint16
}

// NewUDPPseudoHeader builds the pseudo-header of a UDP segment.
func NewUDPPseudoHeader(src, dst [network.AddressLength]byte, udpLength uint16) PseudoHeader {
	return PseudoHeader{
		SrcIP:     src,
		DstIP:     dst,
		Protocol:  network.ProtocolUDP,
		UDPLength: udpLength,
	}
}

// Encode writes the pseudo-header in network order.
func (p PseudoHeader) Encode() [PseudoHeaderLength]byte {
	var b [PseudoHeaderLength]byte
	copy(b[0:4], p.SrcIP[:])
	copy(b[4:8], p.DstIP[:])
	b[8] = 0 // placeholder
	b[9] = p.Protocol
	binary.BigEndian.PutUint16(b[10:12], p.UDPLength)
	return b
}

// Sum returns the checksum.Sum of the encoded pseudo-header.
func (p PseudoHeader) Sum() uint32 {
	b := p.Encode()
	return checksum.Sum(b[:])
}

// UDPChecksum computes the checksum of a UDP segment. The segment must
// be the UDP header followed by the payload, with the checksum field
// zeroed.
func UDPChecksum(p PseudoHeader, segment []byte) uint16 {
	return checksum.Compute(p.Sum() + checksum.Sum(segment))
}
