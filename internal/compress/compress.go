// Package compress decompresses raw upstream payloads according to the
// compression scheme declared in the request configuration. All
// implementations are stateless and safe for concurrent use.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/example/aishub-feed/internal/models"
)

// ErrDecompress is the sentinel wrapped by every decompression failure:
// corrupt archives, truncated streams, payloads that do not match the
// declared scheme.
var ErrDecompress = errors.New("decompression failed")

// Compressor converts between plain and compressed byte slices for a single
// scheme. Compress exists for the feed's tests and tooling; the service
// itself only decompresses.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// For returns the Compressor registered for the given scheme.
func For(scheme models.CompressionScheme) (Compressor, error) {
	switch scheme {
	case models.CompressionNone:
		return nopCompressor{}, nil
	case models.CompressionZip:
		return zipCompressor{}, nil
	case models.CompressionGzip:
		return gzipCompressor{}, nil
	case models.CompressionBzip2:
		return bzip2Compressor{}, nil
	default:
		return nil, fmt.Errorf("compress: unsupported compression scheme %d", int(scheme))
	}
}

// Decompress applies the declared scheme to the payload and returns the
// plain bytes. With CompressionNone the payload is returned unchanged.
func Decompress(payload []byte, scheme models.CompressionScheme) ([]byte, error) {
	c, err := For(scheme)
	if err != nil {
		return nil, err
	}
	return c.Decompress(payload)
}

func wrapDecompress(scheme models.CompressionScheme, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDecompress, scheme, err)
}

type nopCompressor struct{}

func (nopCompressor) Compress(src []byte) ([]byte, error) { return src, nil }

func (nopCompressor) Decompress(src []byte) ([]byte, error) { return src, nil }

type gzipCompressor struct{}

func (gzipCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("compress: gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

func (gzipCompressor) Decompress(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, wrapDecompress(models.CompressionGzip, err)
	}
	defer r.Close()

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapDecompress(models.CompressionGzip, err)
	}
	return plain, nil
}

type bzip2Compressor struct{}

func (bzip2Compressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		return nil, fmt.Errorf("compress: bzip2 writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("compress: bzip2 write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: bzip2 close: %w", err)
	}
	return buf.Bytes(), nil
}

func (bzip2Compressor) Decompress(src []byte) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(src), nil)
	if err != nil {
		return nil, wrapDecompress(models.CompressionBzip2, err)
	}
	defer r.Close()

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapDecompress(models.CompressionBzip2, err)
	}
	return plain, nil
}

// zipArchiveEntry is the name given to the single entry written when
// compressing; decompression accepts any entry name but requires exactly one
// entry, since a multi-entry archive has no unambiguous payload.
const zipArchiveEntry = "data"

type zipCompressor struct{}

func (zipCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create(zipArchiveEntry)
	if err != nil {
		return nil, fmt.Errorf("compress: zip create entry: %w", err)
	}
	if _, err := entry.Write(src); err != nil {
		return nil, fmt.Errorf("compress: zip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: zip close: %w", err)
	}
	return buf.Bytes(), nil
}

func (zipCompressor) Decompress(src []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, wrapDecompress(models.CompressionZip, err)
	}
	if len(r.File) != 1 {
		return nil, wrapDecompress(models.CompressionZip,
			fmt.Errorf("archive must contain exactly one entry, found %d", len(r.File)))
	}

	f, err := r.File[0].Open()
	if err != nil {
		return nil, wrapDecompress(models.CompressionZip, err)
	}
	defer f.Close()

	plain, err := io.ReadAll(f)
	if err != nil {
		return nil, wrapDecompress(models.CompressionZip, err)
	}
	return plain, nil
}
