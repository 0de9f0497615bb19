package lzf

import (
	"bytes"
	"testing"
)

// literal encodes data as one or more literal runs (control byte < 32,
// run length <= 32). Used to build fixtures without a real compressor.
func literal(data []byte) []byte {
	var out []byte
	for len(data) > 0 {
		n := len(data)
		if n > 32 {
			n = 32
		}
		out = append(out, byte(n-1))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return out
}

func TestDecompressLiteralOnly(t *testing.T) {
	src := []byte("AAAAAAAAAA")
	comp := literal(src)
	got, err := Decompress(comp, len(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("got %q want %q", got, src)
	}
}

func TestDecompressBackReference(t *testing.T) {
	// "AAAAAAAAAA" = literal "A" then a back-reference copying 9 more
	// bytes from offset 1 (overlapping copy, offset < length).
	// control byte: length field = 7 => extra length byte follows.
	// want length = 9 (9 more copies after the initial "A" => total 10).
	ctrl := byte((7 << 5) | 0x00) // top 3 bits = length code 7, low 5 bits = offset high bits (0)
	extra := byte(9 - 9)          // len = extra+9 = 9
	offsetLow := byte(0)          // offset = ((0<<8)|0)+1 = 1

	stream := []byte{0x00, 'A', ctrl, extra, offsetLow}
	got, err := Decompress(stream, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte("AAAAAAAAAA")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecompressShortBackReference(t *testing.T) {
	// literal "ab", then back-reference of length 2 at offset 2 -> "abab"
	ctrl := byte((0 << 5) | 0x00) // length code 0 => len = 0+2 = 2
	offsetLow := byte(1)         // offset = ((0<<8)|1)+1 = 2
	stream := []byte{0x01, 'a', 'b', ctrl, offsetLow}
	got, err := Decompress(stream, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte("abab")) {
		t.Fatalf("got %q", got)
	}
}

func TestDecompressLiteralOverrun(t *testing.T) {
	stream := []byte{0x05, 'a', 'b'} // claims 6 literal bytes, only 2 present
	if _, err := Decompress(stream, 6); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDecompressOffsetUnderflow(t *testing.T) {
	// back-reference as the very first token: offset underflows empty output.
	ctrl := byte(0x20)
	stream := []byte{ctrl, 0x00}
	if _, err := Decompress(stream, 2); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDecompressLengthMismatch(t *testing.T) {
	stream := literal([]byte("hello"))
	if _, err := Decompress(stream, 10); err == nil {
		t.Fatalf("expected error")
	}
}
