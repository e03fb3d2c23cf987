package frame

import (
	"github.com/matheuscscp/udp-inject/layers/transport"
)

type (
	// Option configures a Frame on construction.
	Option func(f *Frame)

	// OverflowPolicy decides what happens when a payload write does
	// not fit in the frame capacity.
	OverflowPolicy int
)

const (
	// OverflowTruncate silently keeps the leading bytes that fit on
	// SetData() and AppendData(). AppendByte() still fails when the
	// payload is full.
	OverflowTruncate OverflowPolicy = iota

	// OverflowReject makes every payload write that does not fit fail
	// with ErrCapacityExceeded, leaving the payload untouched.
	OverflowReject
)

func (p OverflowPolicy) String() string {
	if p == OverflowReject {
		return "reject"
	}
	return "truncate"
}

// WithCapacity sets the maximum payload length. Values are clipped to
// [0, transport.MaxSizeData].
func WithCapacity(n int) Option {
	return func(f *Frame) {
		switch {
		case n < 0:
			n = 0
		case n > transport.MaxSizeData:
			n = transport.MaxSizeData
		}
		f.capacity = n
	}
}

// WithOverflowPolicy sets the OverflowPolicy of the payload buffer.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(f *Frame) {
		f.policy = p
	}
}
