package compress

// NoOpCodec implements the NO_COMPRESSION container method: the payload is
// used verbatim.
//
// Performance characteristics:
//   - Compression: 0 ns/byte (just returns the input)
//   - Decompression: 0 ns/byte (just returns the input)
//   - Memory overhead: none, no allocation
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec that passes data through unmodified.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unmodified.
//
// Note: the returned slice aliases the input. Callers must not mutate it
// while the result is still in use.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unmodified; dstSizeHint is ignored since no
// resizing is needed.
//
// Note: the returned slice aliases the input. Callers must not mutate it
// while the result is still in use.
func (c NoOpCodec) Decompress(data []byte, dstSizeHint int) ([]byte, error) {
	return data, nil
}
