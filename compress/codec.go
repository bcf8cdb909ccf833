// Package compress provides the compression/decompression codecs used to
// inflate a log container's payload.
package compress

import (
	"fmt"

	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
	"github.com/vbuslog/blf/internal/pool"
)

// Compressor compresses a byte slice. The core decode pipeline never
// compresses (BLF production is out of scope, spec.md §1 Non-goals); this
// half of the interface exists so Codec stays symmetric and so tests can
// round-trip fixtures through the same codec used for decoding.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously compressed with a
// matching method. dstSizeHint, when nonzero, is the container's declared
// uncompressed-size hint and is used to presize the output buffer.
type Decompressor interface {
	Decompress(data []byte, dstSizeHint int) ([]byte, error)
}

// Codec combines both directions for a single compression method.
type Codec interface {
	Compressor
	Decompressor
}

// PooledDecompressor is satisfied by codecs whose Decompress result is
// backed by a buffer drawn from the container buffer pool. Callers that
// can bound the result's lifetime (container.Decompress's streaming
// caller, in particular) use DecompressPooled and recycle the buffer via
// internal/pool.PutContainerBuffer instead of letting it go to garbage
// collection.
type PooledDecompressor interface {
	DecompressPooled(data []byte, dstSizeHint int) (*pool.ByteBuffer, error)
}

// CreateCodec returns the Codec for a container's declared compression
// method. Any method other than NoCompression or ZlibDeflate is fatal per
// spec.md §7 class 3.
func CreateCodec(method format.CompressionMethod) (Codec, error) {
	switch method {
	case format.NoCompression:
		return NewNoOpCodec(), nil
	case format.ZlibDeflate:
		return NewDeflateCodec(), nil
	default:
		return nil, fmt.Errorf("%w: method %s", errs.ErrUnsupportedCompression, method)
	}
}
