package frame

import (
	"encoding/binary"

	"github.com/matheuscscp/udp-inject/layers/link"
	"github.com/matheuscscp/udp-inject/layers/network"
	"github.com/matheuscscp/udp-inject/layers/transport"
	"github.com/matheuscscp/udp-inject/pkg/checksum"
)

// Field offsets from the start of the Ethernet header.
const (
	offDstMAC    = 0
	offSrcMAC    = offDstMAC + link.AddressLength
	offEtherType = offSrcMAC + link.AddressLength

	offIP            = link.HeaderLength
	offIPVersionIHL  = offIP
	offIPTOS         = offIP + 1
	offIPTotalLength = offIP + 2
	offIPID          = offIP + 4
	offIPFlagsFrag   = offIP + 6
	offIPTTL         = offIP + 8
	offIPProtocol    = offIP + 9
	offIPChecksum    = offIP + 10
	offIPSrc         = offIP + 12
	offIPDst         = offIP + 16

	offUDP         = offIP + network.HeaderLength
	offUDPSrcPort  = offUDP
	offUDPDstPort  = offUDP + 2
	offUDPLength   = offUDP + 4
	offUDPChecksum = offUDP + 6

	offPayload = offUDP + transport.UDPHeaderLength
)

// HeadersLength is the length of the Ethernet, IPv4 and UDP headers.
const HeadersLength = offPayload

// WireLength returns the number of bytes that go on the wire: the
// Ethernet header plus the IPv4 total length.
func (f *Frame) WireLength() int {
	return link.HeaderLength + int(f.IPTotalLength())
}

// Seal recomputes the IPv4 and UDP checksums and returns the frame
// encoded in network order, exactly WireLength() bytes long. It must be
// called right before every transmission so no stale checksum is ever
// sent. Sealing a frame that was not mutated since the last Seal()
// yields identical bytes.
func (f *Frame) Seal() []byte {
	b := f.encode()

	f.ipChecksum = checksum.Compute(checksum.Sum(b[offIP:offUDP]))
	binary.BigEndian.PutUint16(b[offIPChecksum:], f.ipChecksum)

	f.udpChecksum = transport.UDPChecksum(f.PseudoHeader(), b[offUDP:])
	binary.BigEndian.PutUint16(b[offUDPChecksum:], f.udpChecksum)

	if !f.state.Terminal() {
		f.state = Sealed
	}
	return b
}

// encode writes every field with both checksums zeroed.
func (f *Frame) encode() []byte {
	b := make([]byte, f.WireLength())

	copy(b[offDstMAC:], f.dstMAC[:])
	copy(b[offSrcMAC:], f.srcMAC[:])
	binary.BigEndian.PutUint16(b[offEtherType:], link.EtherTypeIPv4)

	b[offIPVersionIHL] = network.Version<<4 | network.IHL
	b[offIPTOS] = 0
	binary.BigEndian.PutUint16(b[offIPTotalLength:], f.IPTotalLength())
	binary.BigEndian.PutUint16(b[offIPID:], 0)
	binary.BigEndian.PutUint16(b[offIPFlagsFrag:], 0)
	b[offIPTTL] = f.ttl
	b[offIPProtocol] = network.ProtocolUDP
	copy(b[offIPSrc:], f.srcIP[:])
	copy(b[offIPDst:], f.dstIP[:])

	binary.BigEndian.PutUint16(b[offUDPSrcPort:], f.srcPort)
	binary.BigEndian.PutUint16(b[offUDPDstPort:], f.dstPort)
	binary.BigEndian.PutUint16(b[offUDPLength:], f.UDPLength())

	copy(b[offPayload:], f.payload)
	return b
}
