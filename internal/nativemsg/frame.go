package nativemsg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxFrameSize bounds a single payload. A length beyond this means the
// byte stream is no longer frame-aligned, so the reader gives up rather
// than allocating garbage.
const maxFrameSize = 16 << 20

// ReadFrame reads one length-prefixed message: a 4-byte little-endian
// payload length followed by exactly that many bytes. A short read
// surfaces as io.EOF or io.ErrUnexpectedEOF, which callers treat as
// the peer disconnecting.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(lenBuf[:])
	if length > maxFrameSize {
		return nil, fmt.Errorf("frame length %d exceeds limit", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// WriteFrame writes one length-prefixed message.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))

	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("failed to write frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	return nil
}
