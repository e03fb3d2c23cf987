package test

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DecodeFrame decodes wire bytes into their Ethernet, IPv4 and UDP layers.
func DecodeFrame(t *testing.T, b []byte) (*gplayers.Ethernet, *gplayers.IPv4, *gplayers.UDP) {
	t.Helper()

	// the udp payload may fail to decode as an application layer
	// (e.g. dns on port 53), so pkt.ErrorLayer() is not checked
	pkt := gopacket.NewPacket(b, gplayers.LayerTypeEthernet, gopacket.Default)

	eth, ok := pkt.Layer(gplayers.LayerTypeEthernet).(*gplayers.Ethernet)
	require.True(t, ok, "missing ethernet layer")
	ip, ok := pkt.Layer(gplayers.LayerTypeIPv4).(*gplayers.IPv4)
	require.True(t, ok, "missing ipv4 layer")
	udp, ok := pkt.Layer(gplayers.LayerTypeUDP).(*gplayers.UDP)
	require.True(t, ok, "missing udp layer")

	return eth, ip, udp
}

// SerializeDatagram serializes an IPv4 datagram carrying a UDP segment
// with gopacket, computing lengths and checksums. The result is what is
// expected to follow the Ethernet header of a sealed frame.
func SerializeDatagram(
	t *testing.T,
	srcIPAddress, dstIPAddress net.IP,
	srcPort, dstPort uint16,
	payload []byte,
) []byte {
	t.Helper()

	datagram := &gplayers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: gplayers.IPProtocolUDP,
		SrcIP:    srcIPAddress,
		DstIP:    dstIPAddress,
	}
	segment := &gplayers.UDP{
		SrcPort: gplayers.UDPPort(srcPort),
		DstPort: gplayers.UDPPort(dstPort),
	}
	require.NoError(t, segment.SetNetworkLayerForChecksum(datagram))

	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(
		buf,
		gopacket.SerializeOptions{
			FixLengths:       true,
			ComputeChecksums: true,
		},
		datagram,
		segment,
		gopacket.Payload(payload),
	)
	require.NoError(t, err)
	return buf.Bytes()
}

// AssertChecksums reserializes the decoded layers of a frame asking
// gopacket to compute the checksums and compares them with the ones
// on the wire.
func AssertChecksums(t *testing.T, b []byte) {
	t.Helper()

	_, datagram, segment := DecodeFrame(t, b)
	ipChecksum, udpChecksum := datagram.Checksum, segment.Checksum

	require.NoError(t, segment.SetNetworkLayerForChecksum(datagram))
	err := gopacket.SerializeLayers(
		gopacket.NewSerializeBuffer(),
		gopacket.SerializeOptions{ComputeChecksums: true},
		datagram,
		segment,
		gopacket.Payload(segment.Payload),
	)
	require.NoError(t, err)

	assert.Equal(t, datagram.Checksum, ipChecksum, "ipv4 checksum")
	assert.Equal(t, segment.Checksum, udpChecksum, "udp checksum")
}
