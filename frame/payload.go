package frame

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const readChunkSize = 4096

// Capacity returns the maximum payload length.
func (f *Frame) Capacity() int {
	return f.capacity
}

// OverflowPolicy returns the policy applied to payload writes that do
// not fit.
func (f *Frame) OverflowPolicy() OverflowPolicy {
	return f.policy
}

// PayloadLen returns the current payload length.
func (f *Frame) PayloadLen() int {
	return len(f.payload)
}

// Data returns a copy of the payload.
func (f *Frame) Data() []byte {
	return append([]byte{}, f.payload...)
}

// SetData replaces the payload and returns the number of bytes stored.
// Under OverflowTruncate only the leading Capacity() bytes are kept and
// no error is returned. Under OverflowReject a payload larger than
// Capacity() fails with ErrCapacityExceeded.
func (f *Frame) SetData(b []byte) (int, error) {
	if f.state.Terminal() {
		return 0, ErrFrameFinalized
	}
	if len(b) > f.capacity && f.policy == OverflowReject {
		return 0, f.capacityError(len(b))
	}
	if err := f.mutate(); err != nil {
		return 0, err
	}
	if len(b) > f.capacity {
		b = b[:f.capacity]
	}
	f.payload = append(f.payload[:0], b...)
	return len(b), nil
}

// AppendData grows the payload and returns the number of bytes stored.
// Under OverflowTruncate only the leading bytes that fit are copied and
// no error is returned. Under OverflowReject nothing is copied and
// ErrCapacityExceeded is returned.
func (f *Frame) AppendData(b []byte) (int, error) {
	if f.state.Terminal() {
		return 0, ErrFrameFinalized
	}
	room := f.capacity - len(f.payload)
	if len(b) > room && f.policy == OverflowReject {
		return 0, f.capacityError(len(f.payload) + len(b))
	}
	if err := f.mutate(); err != nil {
		return 0, err
	}
	if len(b) > room {
		b = b[:room]
	}
	f.payload = append(f.payload, b...)
	return len(b), nil
}

// AppendByte appends one byte. It fails with ErrCapacityExceeded when
// the payload is already full, regardless of the OverflowPolicy.
func (f *Frame) AppendByte(c byte) error {
	if f.state.Terminal() {
		return ErrFrameFinalized
	}
	if len(f.payload) >= f.capacity {
		return f.capacityError(len(f.payload) + 1)
	}
	if err := f.mutate(); err != nil {
		return err
	}
	f.payload = append(f.payload, c)
	return nil
}

// ReadFrom appends everything read from r to the payload, as if calling
// AppendByte() for each byte, and returns the number of bytes stored.
// It stops at EOF, or with ErrCapacityExceeded at the first byte that
// does not fit, in which case the bytes that fit are kept.
func (f *Frame) ReadFrom(r io.Reader) (int64, error) {
	if f.state.Terminal() {
		return 0, ErrFrameFinalized
	}
	var total int64
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			room := f.capacity - len(f.payload)
			chunk := buf[:n]
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			f.state = Configuring
			f.payload = append(f.payload, chunk...)
			total += int64(len(chunk))
			if len(chunk) < n {
				return total, f.capacityError(len(f.payload) + n - len(chunk))
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("error reading payload: %w", err)
		}
	}
}

// ReadFile replaces the payload with the contents of a file. Files
// larger than Capacity() are handled like SetData() does.
func (f *Frame) ReadFile(name string) (int, error) {
	if f.state.Terminal() {
		return 0, ErrFrameFinalized
	}
	file, err := os.Open(name)
	if err != nil {
		return 0, fmt.Errorf("error opening payload file: %w", err)
	}
	defer file.Close()

	// one extra byte tells oversize files apart
	b, err := io.ReadAll(io.LimitReader(file, int64(f.capacity)+1))
	if err != nil {
		return 0, fmt.Errorf("error reading payload file: %w", err)
	}
	return f.SetData(b)
}

func (f *Frame) capacityError(want int) error {
	return fmt.Errorf("%w: want %d bytes, capacity is %d", ErrCapacityExceeded, want, f.capacity)
}
