package transport_test

import (
	"net"
	"testing"

	"github.com/matheuscscp/udp-inject/layers/transport"
	"github.com/matheuscscp/udp-inject/test"

	"github.com/stretchr/testify/assert"
)

func TestPseudoHeaderEncode(t *testing.T) {
	p := transport.NewUDPPseudoHeader([4]byte{10, 0, 0, 1}, [4]byte{10, 0, 0, 2}, 12)

	b := p.Encode()
	assert.Equal(t, [transport.PseudoHeaderLength]byte{
		10, 0, 0, 1,
		10, 0, 0, 2,
		0, 17,
		0, 12,
	}, b)
	assert.Equal(t, uint32(0x0a00+0x0001+0x0a00+0x0002+0x0011+0x000c), p.Sum())
}

func TestUDPChecksumMatchesGopacket(t *testing.T) {
	for name, payload := range map[string][]byte{
		"even": []byte("hello world!"),
		"odd":  []byte("hello world"),
	} {
		t.Run(name, func(t *testing.T) {
			src, dst := net.IP{192, 168, 1, 10}, net.IP{192, 168, 1, 20}
			datagram := test.SerializeDatagram(t, src, dst, 4321, 1234, payload)
			segment := append([]byte(nil), datagram[20:]...)
			expected := uint16(segment[6])<<8 | uint16(segment[7])
			segment[6], segment[7] = 0, 0

			p := transport.NewUDPPseudoHeader(
				[4]byte{192, 168, 1, 10},
				[4]byte{192, 168, 1, 20},
				uint16(len(segment)),
			)
			assert.Equal(t, expected, transport.UDPChecksum(p, segment))
		})
	}
}

func TestMaxSizeData(t *testing.T) {
	assert.Equal(t, 65507, transport.MaxSizeData)
}
