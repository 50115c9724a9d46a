package libqubo_test

import (
	"bytes"
)

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (buf *closingBuffer) Close() error {
	buf.closed = true
	return nil
}
