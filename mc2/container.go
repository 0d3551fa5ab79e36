package mc2

import (
	"fmt"

	"github.com/cursorhigh/mc2/internal/wire"
)

// magic is the literal MC2v1 container magic (spec.md §6.1).
var magic = [5]byte{'M', 'C', '2', 'v', '1'}

// headerSize is the fixed-layout header length before the base-layer
// segment (offsets 0..25 in spec.md §6.1's table).
const headerSize = 25

// header mirrors the fixed fields of the MC2v1 container format.
type header struct {
	width, height uint32
	channels      uint8
	blockSize     uint8
	down          uint8
	quality       uint8
	baseLen       uint64
}

// marshalHeader packs the fixed-layout header (offsets 0..25).
func marshalHeader(h header) []byte {
	w := wire.NewWriter(headerSize)
	w.WriteBytes(magic[:])
	w.WriteUint32(h.width)
	w.WriteUint32(h.height)
	w.WriteUint8(h.channels)
	w.WriteUint8(h.blockSize)
	w.WriteUint8(h.down)
	w.WriteUint8(h.quality)
	w.WriteUint64(h.baseLen)
	return w.Bytes()
}

// unmarshalHeader parses and validates the fixed-layout header, per
// spec.md §6.1's validation rules and §7's MalformedHeader/
// UnsupportedParameter error kinds.
func unmarshalHeader(r *wire.Reader) (header, error) {
	if r.Len() < headerSize {
		return header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedHeader, headerSize, r.Len())
	}

	magicBytes, err := r.ReadBytes(5)
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if string(magicBytes) != string(magic[:]) {
		return header{}, fmt.Errorf("%w: bad magic %q", ErrMalformedHeader, magicBytes)
	}

	width, err := r.ReadUint32()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	height, err := r.ReadUint32()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	channels, err := r.ReadUint8()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	blockSize, err := r.ReadUint8()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	down, err := r.ReadUint8()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	quality, err := r.ReadUint8()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	baseLen, err := r.ReadUint64()
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	h := header{
		width: width, height: height, channels: channels,
		blockSize: blockSize, down: down, quality: quality, baseLen: baseLen,
	}

	if width < 1 || height < 1 {
		return header{}, fmt.Errorf("%w: width/height must be >= 1, got %dx%d", ErrUnsupportedParameter, width, height)
	}
	if channels != 3 {
		return header{}, fmt.Errorf("%w: channels must be 3, got %d", ErrUnsupportedParameter, channels)
	}
	if blockSize != 8 {
		return header{}, fmt.Errorf("%w: block_size must be 8, got %d", ErrUnsupportedParameter, blockSize)
	}
	if down < 1 {
		return header{}, fmt.Errorf("%w: down must be >= 1, got %d", ErrUnsupportedParameter, down)
	}
	if quality < 1 || quality > 100 {
		return header{}, fmt.Errorf("%w: quality must be in [1,100], got %d", ErrUnsupportedParameter, quality)
	}

	return h, nil
}

// muxContainer assembles the full MC2v1 byte layout: header, base-layer
// bytes, then an 8-byte length-prefixed payload (spec.md §4.8/§6.1).
func muxContainer(h header, baseBytes, payload []byte) []byte {
	out := marshalHeader(h)
	out = append(out, baseBytes...)

	w := wire.NewWriter(8 + len(payload))
	w.WriteUint64(uint64(len(payload)))
	w.WriteBytes(payload)
	return append(out, w.Bytes()...)
}

// demuxContainer reverses muxContainer, validating that exactly base_len
// and then payload_len bytes are available, per spec.md §4.8/§7's
// TruncatedContainer error kind. Trailing bytes beyond the payload are
// ignored.
func demuxContainer(data []byte) (h header, baseBytes, payload []byte, err error) {
	r := wire.NewReader(data)
	h, err = unmarshalHeader(r)
	if err != nil {
		return header{}, nil, nil, err
	}

	baseBytes, err = r.ReadBytes(int(h.baseLen))
	if err != nil {
		return header{}, nil, nil, fmt.Errorf("%w: base layer: %v", ErrTruncatedContainer, err)
	}

	payloadLen, err := r.ReadUint64()
	if err != nil {
		return header{}, nil, nil, fmt.Errorf("%w: payload length: %v", ErrTruncatedContainer, err)
	}

	payload, err = r.ReadBytes(int(payloadLen))
	if err != nil {
		return header{}, nil, nil, fmt.Errorf("%w: payload: %v", ErrTruncatedContainer, err)
	}

	return h, baseBytes, payload, nil
}
