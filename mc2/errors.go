package mc2

import "errors"

// Error kinds from spec.md §7. Callers use errors.Is against these
// sentinels to recover the error kind; each is wrapped with additional
// context via fmt.Errorf("...: %w", ...) at the point of failure.
var (
	// ErrMalformedHeader covers a magic mismatch or a header shorter than
	// 25 bytes.
	ErrMalformedHeader = errors.New("mc2: malformed container header")

	// ErrTruncatedContainer covers fewer than base_len or payload_len
	// bytes being available when expected.
	ErrTruncatedContainer = errors.New("mc2: truncated container")

	// ErrUnsupportedParameter covers channels != 3, block_size != 8,
	// quality outside [1,100], or down < 1.
	ErrUnsupportedParameter = errors.New("mc2: unsupported parameter")

	// ErrDeflateFailure covers a payload that is not a valid deflate
	// stream. A payload that inflates but holds an invalid archive is
	// reported as ErrArchiveFailure.
	ErrDeflateFailure = errors.New("mc2: deflate failure")

	// ErrArchiveFailure covers an archive missing the expected r/g/b
	// arrays, or with a dtype/shape/N mismatch.
	ErrArchiveFailure = errors.New("mc2: archive failure")

	// ErrCoefficientOverflow covers a quantised coefficient falling
	// outside the signed 16-bit range during encoding.
	ErrCoefficientOverflow = errors.New("mc2: coefficient overflow")

	// ErrBaseLayerFailure covers embedded base-layer bytes that cannot be
	// parsed as an RGB raster of the expected dimensions.
	ErrBaseLayerFailure = errors.New("mc2: base layer failure")
)
