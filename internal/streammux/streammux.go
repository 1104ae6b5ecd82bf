package streammux

// Package streammux demultiplexes the container engine's attached exec
// stream. The wire format is a repeating 8-byte header followed by a
// payload: byte 0 is the stream type (1 stdout, 2 stderr, anything else
// is skipped), bytes 1-3 are reserved, bytes 4-7 are the big-endian
// payload length.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// StreamType selects which demultiplexed streams to keep.
type StreamType byte

const (
	Stdout StreamType = 1
	Stderr StreamType = 2
)

const headerSize = 8

// Demux reads r to completion and concatenates, in frame order, the
// payloads of the wanted stream types as UTF-8 text. A truncated trailing
// header or payload is appended as raw text rather than discarded.
func Demux(r io.Reader, want ...StreamType) (string, error) {
	keep := func(t byte) bool {
		for _, w := range want {
			if byte(w) == t {
				return true
			}
		}
		return false
	}

	var out bytes.Buffer
	header := make([]byte, headerSize)
	for {
		n, err := io.ReadFull(r, header)
		if errors.Is(err, io.EOF) {
			return out.String(), nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			out.Write(header[:n])
			return out.String(), nil
		}
		if err != nil {
			return out.String(), err
		}

		length := int64(binary.BigEndian.Uint32(header[4:8]))
		if !keep(header[0]) {
			if _, err := io.CopyN(io.Discard, r, length); err != nil {
				if errors.Is(err, io.EOF) {
					return out.String(), nil
				}
				return out.String(), err
			}
			continue
		}

		if _, err := io.CopyN(&out, r, length); err != nil {
			if errors.Is(err, io.EOF) {
				// Partial payload already written; keep it as raw text.
				return out.String(), nil
			}
			return out.String(), err
		}
	}
}
