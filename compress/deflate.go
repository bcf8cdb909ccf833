package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"

	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/internal/pool"
)

// DeflateCodec implements the ZLIB_DEFLATE container method: a raw DEFLATE
// stream (no zlib wrapper) with a 15-bit window, per spec.md §3/§6.
//
// Readers are pooled since flate.NewReader allocates a sizeable history
// buffer; Decompress resets a pooled reader instead of constructing a new
// one per container.
type DeflateCodec struct {
	readers sync.Pool
}

var _ Codec = (*DeflateCodec)(nil)

// NewDeflateCodec creates a raw-DEFLATE codec backed by klauspost/compress.
func NewDeflateCodec() *DeflateCodec {
	return &DeflateCodec{
		readers: sync.Pool{
			New: func() any {
				return flate.NewReader(nil)
			},
		},
	}
}

// Compress deflates data with no zlib wrapper, matching the wire format
// Decompress expects. Not exercised by the decode-only core; kept so Codec
// stays symmetric and so tests can build synthetic compressed fixtures.
func (c *DeflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecompression, err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a raw DEFLATE stream into a buffer drawn from the
// container buffer pool, presized to dstSizeHint when the container
// declared one. The returned slice aliases that pooled buffer; per
// spec.md §3 invariant 6, it remains valid for the lifetime of its owning
// container (i.e. until the caller moves on to the next one).
//
// The pooled buffer backing the result is never returned here: this
// method exists for Codec symmetry and ad-hoc/test use. Callers on the
// hot path that can bound the result's lifetime use DecompressPooled
// instead and recycle the buffer once they're done with it.
func (c *DeflateCodec) Decompress(data []byte, dstSizeHint int) ([]byte, error) {
	bb, err := c.DecompressPooled(data, dstSizeHint)
	if err != nil {
		return nil, err
	}

	return bb.Bytes(), nil
}

// DecompressPooled is the same inflate as Decompress, but returns the
// pool.ByteBuffer backing the result instead of a bare slice. The caller
// owns the buffer's lifetime and must return it via
// internal/pool.PutContainerBuffer once it has finished using (or copied
// out of) the decompressed bytes.
func (c *DeflateCodec) DecompressPooled(data []byte, dstSizeHint int) (*pool.ByteBuffer, error) {
	r, _ := c.readers.Get().(io.ReadCloser)
	if resetter, ok := r.(flate.Resetter); ok {
		if err := resetter.Reset(bytes.NewReader(data), nil); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrDecompression, err)
		}
	}
	defer c.readers.Put(r)

	bb := pool.GetContainerBuffer()
	bb.Reset()
	if dstSizeHint > 0 {
		bb.Grow(dstSizeHint)
	}

	if _, err := io.Copy(bb, r); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecompression, err)
	}

	return bb, nil
}
