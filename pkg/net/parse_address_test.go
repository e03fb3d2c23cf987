package pkgnet_test

import (
	"testing"

	pkgnet "github.com/matheuscscp/udp-inject/pkg/net"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4(t *testing.T) {
	t.Parallel()

	for s, expected := range map[string][4]byte{
		"10.0.0.1":        {10, 0, 0, 1},
		"0.0.0.0":         {0, 0, 0, 0},
		"171.0.0.1":       {171, 0, 0, 1},
		"255.255.255.255": {255, 255, 255, 255},
	} {
		t.Run(s, func(t *testing.T) {
			s, expected := s, expected // copy for running in parallel
			t.Parallel()

			ip, err := pkgnet.ParseIPv4(s)
			require.NoError(t, err)
			assert.Equal(t, expected, ip)
		})
	}
}

func TestParseIPv4Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		"not-an-ip",
		"10.1",
		"256.0.0.1",
		"010.0.0.1",
		"10.0.0.1 ",
		"::1",
		"::ffff:10.0.0.1",
	} {
		t.Run(s, func(t *testing.T) {
			s := s // copy for running in parallel
			t.Parallel()

			_, err := pkgnet.ParseIPv4(s)
			assert.Error(t, err)
		})
	}
}

func TestParseMAC(t *testing.T) {
	t.Parallel()

	mac, err := pkgnet.ParseMAC("00:00:5e:00:53:af")
	require.NoError(t, err)
	assert.Equal(t, [6]byte{0x00, 0x00, 0x5e, 0x00, 0x53, 0xaf}, mac)

	mac, err = pkgnet.ParseMAC("FF-FF-FF-FF-FF-FF")
	require.NoError(t, err)
	assert.Equal(t, [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, mac)

	_, err = pkgnet.ParseMAC("00:00:5e:00:53")
	assert.Error(t, err)

	_, err = pkgnet.ParseMAC("02:00:5e:10:00:00:00:01") // EUI-64
	assert.Error(t, err)
}
