package wire

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteBytes([]byte("MC2v1"))
	w.WriteUint32(1920)
	w.WriteUint32(1080)
	w.WriteUint8(3)
	w.WriteUint64(123456789)
	w.WriteInt16(-5)

	r := NewReader(w.Bytes())
	magic, err := r.ReadBytes(5)
	if err != nil || string(magic) != "MC2v1" {
		t.Fatalf("magic: got %q, err %v", magic, err)
	}
	width, err := r.ReadUint32()
	if err != nil || width != 1920 {
		t.Fatalf("width: got %d, err %v", width, err)
	}
	height, err := r.ReadUint32()
	if err != nil || height != 1080 {
		t.Fatalf("height: got %d, err %v", height, err)
	}
	channels, err := r.ReadUint8()
	if err != nil || channels != 3 {
		t.Fatalf("channels: got %d, err %v", channels, err)
	}
	baseLen, err := r.ReadUint64()
	if err != nil || baseLen != 123456789 {
		t.Fatalf("baseLen: got %d, err %v", baseLen, err)
	}
	v, err := r.ReadInt16()
	if err != nil || v != -5 {
		t.Fatalf("int16: got %d, err %v", v, err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected reader exhausted, %d bytes left", r.Len())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadUint32(); err != ErrShortBuffer {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if _, err := r.ReadBytes(-1); err != ErrShortBuffer {
		t.Fatalf("expected ErrShortBuffer for negative length, got %v", err)
	}
}
