package frame

import "errors"

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrCapacityExceeded = errors.New("payload capacity exceeded")
	ErrFrameFinalized   = errors.New("frame already sent or failed")
)
