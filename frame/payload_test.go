package frame_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/matheuscscp/udp-inject/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertLengths(t *testing.T, f *frame.Frame, payloadLen int) {
	t.Helper()
	assert.Equal(t, payloadLen, f.PayloadLen())
	assert.Equal(t, uint16(28+payloadLen), f.IPTotalLength())
	assert.Equal(t, uint16(8+payloadLen), f.UDPLength())
}

func TestSetData(t *testing.T) {
	f := frame.New()

	n, err := f.SetData([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assertLengths(t, f, 11)

	n, err = f.SetData([]byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assertLengths(t, f, 4)
	assert.Equal(t, []byte("ping"), f.Data())

	n, err = f.SetData(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assertLengths(t, f, 0)
}

func TestSetDataTruncates(t *testing.T) {
	f := frame.New()
	in := bytes.Repeat([]byte{0xab}, 70000)

	n, err := f.SetData(in)
	require.NoError(t, err)
	assert.Equal(t, 65507, n)
	assertLengths(t, f, 65507)
	assert.Equal(t, in[:65507], f.Data())
}

func TestAppendData(t *testing.T) {
	f := frame.New(frame.WithCapacity(10))

	n, err := f.AppendData([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assertLengths(t, f, 5)

	// only the leading bytes that fit are copied
	n, err = f.AppendData([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assertLengths(t, f, 10)
	assert.Equal(t, []byte("hello worl"), f.Data())

	n, err = f.AppendData([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assertLengths(t, f, 10)
}

func TestAppendDataAtMaxSize(t *testing.T) {
	f := frame.New()
	_, err := f.SetData(make([]byte, 65500))
	require.NoError(t, err)

	n, err := f.AppendData(make([]byte, 100))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assertLengths(t, f, 65507)
	assert.Equal(t, uint16(65535), f.IPTotalLength())
}

func TestAppendByte(t *testing.T) {
	f := frame.New(frame.WithCapacity(3))

	for _, c := range []byte("abc") {
		require.NoError(t, f.AppendByte(c))
	}
	assertLengths(t, f, 3)

	err := f.AppendByte('d')
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assertLengths(t, f, 3)
	assert.Equal(t, []byte("abc"), f.Data())
}

func TestAppendByteAtMaxSize(t *testing.T) {
	f := frame.New()
	_, err := f.SetData(make([]byte, 65507))
	require.NoError(t, err)

	err = f.AppendByte(0)
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assertLengths(t, f, 65507)
}

func TestOverflowReject(t *testing.T) {
	f := frame.New(frame.WithCapacity(8), frame.WithOverflowPolicy(frame.OverflowReject))

	_, err := f.SetData([]byte("12345"))
	require.NoError(t, err)

	n, err := f.SetData([]byte("123456789"))
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assert.Equal(t, 0, n)
	assert.Equal(t, []byte("12345"), f.Data())

	n, err = f.AppendData([]byte("6789"))
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assert.Equal(t, 0, n)
	assertLengths(t, f, 5)

	n, err = f.AppendData([]byte("678"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assertLengths(t, f, 8)

	assert.ErrorIs(t, f.AppendByte('9'), frame.ErrCapacityExceeded)
	assertLengths(t, f, 8)
}

func TestWithCapacityIsClipped(t *testing.T) {
	assert.Equal(t, 65507, frame.New(frame.WithCapacity(1<<20)).Capacity())
	assert.Equal(t, 0, frame.New(frame.WithCapacity(-1)).Capacity())

	f := frame.New(frame.WithCapacity(0))
	assert.ErrorIs(t, f.AppendByte('a'), frame.ErrCapacityExceeded)
	assertLengths(t, f, 0)
}

func TestReadFrom(t *testing.T) {
	f := frame.New()
	_, err := f.AppendData([]byte("> "))
	require.NoError(t, err)

	r := iotest.OneByteReader(strings.NewReader("typed on a terminal"))
	n, err := f.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, int64(19), n)
	assert.Equal(t, []byte("> typed on a terminal"), f.Data())
	assertLengths(t, f, 21)
}

func TestReadFromStopsAtCapacity(t *testing.T) {
	f := frame.New(frame.WithCapacity(5000))

	in := bytes.Repeat([]byte("0123456789"), 1000)
	n, err := f.ReadFrom(bytes.NewReader(in))
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assert.Equal(t, int64(5000), n)
	assert.Equal(t, in[:5000], f.Data())
	assertLengths(t, f, 5000)
}

func TestReadFromExactFit(t *testing.T) {
	f := frame.New(frame.WithCapacity(4))

	n, err := f.ReadFrom(strings.NewReader("ping"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assertLengths(t, f, 4)
}

func TestReadFromError(t *testing.T) {
	f := frame.New()
	readErr := errors.New("boom")

	r := iotest.TimeoutReader(strings.NewReader("ping"))
	n, err := f.ReadFrom(r)
	assert.ErrorIs(t, err, iotest.ErrTimeout)
	assert.Equal(t, int64(4), n)

	_, err = f.ReadFrom(iotest.ErrReader(readErr))
	assert.ErrorIs(t, err, readErr)
	assertLengths(t, f, 4)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small")
	large := filepath.Join(dir, "large")
	require.NoError(t, os.WriteFile(small, []byte("file payload"), 0o600))
	require.NoError(t, os.WriteFile(large, bytes.Repeat([]byte{'x'}, 100), 0o600))

	f := frame.New(frame.WithCapacity(64))
	_, err := f.SetData([]byte("replaced"))
	require.NoError(t, err)

	n, err := f.ReadFile(small)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, []byte("file payload"), f.Data())

	n, err = f.ReadFile(large)
	require.NoError(t, err)
	assert.Equal(t, 64, n)
	assertLengths(t, f, 64)

	strict := frame.New(frame.WithCapacity(64), frame.WithOverflowPolicy(frame.OverflowReject))
	_, err = strict.ReadFile(large)
	assert.ErrorIs(t, err, frame.ErrCapacityExceeded)
	assertLengths(t, strict, 0)

	_, err = f.ReadFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assertLengths(t, f, 64)
}
