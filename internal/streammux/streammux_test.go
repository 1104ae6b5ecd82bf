package streammux

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func frame(stream byte, payload string) []byte {
	b := make([]byte, 8, 8+len(payload))
	b[0] = stream
	binary.BigEndian.PutUint32(b[4:8], uint32(len(payload)))
	return append(b, payload...)
}

func TestDemux(t *testing.T) {
	input := append(frame(1, "hello"), frame(2, "bad")...)

	cases := []struct {
		name  string
		input []byte
		want  []StreamType
		out   string
	}{
		{
			name:  "stdout only",
			input: input,
			want:  []StreamType{Stdout},
			out:   "hello",
		},
		{
			name:  "combined in frame order",
			input: input,
			want:  []StreamType{Stdout, Stderr},
			out:   "hellobad",
		},
		{
			name:  "stderr only",
			input: input,
			want:  []StreamType{Stderr},
			out:   "bad",
		},
		{
			name:  "unknown stream type skipped",
			input: append(frame(7, "junk"), frame(1, "ok")...),
			want:  []StreamType{Stdout, Stderr},
			out:   "ok",
		},
		{
			name:  "empty input",
			input: nil,
			want:  []StreamType{Stdout},
			out:   "",
		},
		{
			name:  "multiple frames same stream concatenate",
			input: append(frame(1, "foo"), frame(1, "bar")...),
			want:  []StreamType{Stdout},
			out:   "foobar",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Demux(bytes.NewReader(tc.input), tc.want...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.out {
				t.Fatalf("Demux() = %q, want %q", got, tc.out)
			}
		})
	}
}

func TestDemuxTruncatedHeader(t *testing.T) {
	// A trailing partial header is kept as raw text, not discarded.
	input := append(frame(1, "hi"), []byte("tail")...)
	got, err := Demux(bytes.NewReader(input), Stdout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hitail" {
		t.Fatalf("Demux() = %q, want %q", got, "hitail")
	}
}

func TestDemuxTruncatedPayload(t *testing.T) {
	// Header promises 10 bytes but only 4 arrive.
	input := append(frame(1, "")[:8], []byte("part")...)
	binary.BigEndian.PutUint32(input[4:8], 10)
	got, err := Demux(bytes.NewReader(input), Stdout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "part" {
		t.Fatalf("Demux() = %q, want %q", got, "part")
	}
}
