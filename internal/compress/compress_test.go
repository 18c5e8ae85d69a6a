package compress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/example/aishub-feed/internal/models"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(`{"ERROR":0,"RECORDS":0,"VESSELS":[]}`)

	schemes := []models.CompressionScheme{
		models.CompressionNone,
		models.CompressionZip,
		models.CompressionGzip,
		models.CompressionBzip2,
	}

	for _, scheme := range schemes {
		t.Run(scheme.String(), func(t *testing.T) {
			c, err := For(scheme)
			if err != nil {
				t.Fatalf("unexpected error resolving compressor: %v", err)
			}

			compressed, err := c.Compress(payload)
			if err != nil {
				t.Fatalf("unexpected compress error: %v", err)
			}

			plain, err := Decompress(compressed, scheme)
			if err != nil {
				t.Fatalf("unexpected decompress error: %v", err)
			}
			if !bytes.Equal(plain, payload) {
				t.Fatalf("round trip mismatch: got %q, want %q", plain, payload)
			}
		})
	}
}

func TestDecompressNoneIsIdentity(t *testing.T) {
	payload := []byte("MMSI,TIME\n244660616,now")
	plain, err := Decompress(payload, models.CompressionNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(plain, payload) {
		t.Fatalf("expected identity, got %q", plain)
	}
}

func TestDecompressCorruptStream(t *testing.T) {
	for _, scheme := range []models.CompressionScheme{
		models.CompressionZip,
		models.CompressionGzip,
		models.CompressionBzip2,
	} {
		if _, err := Decompress([]byte("definitely not compressed"), scheme); !errors.Is(err, ErrDecompress) {
			t.Fatalf("expected ErrDecompress for corrupt %s stream, got %v", scheme, err)
		}
	}
}

func TestDecompressZipRejectsAmbiguousArchives(t *testing.T) {
	var multi bytes.Buffer
	w := zip.NewWriter(&multi)
	for _, name := range []string{"a", "b"} {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("unexpected error creating entry: %v", err)
		}
		if _, err := entry.Write([]byte(name)); err != nil {
			t.Fatalf("unexpected error writing entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error closing archive: %v", err)
	}

	if _, err := Decompress(multi.Bytes(), models.CompressionZip); !errors.Is(err, ErrDecompress) {
		t.Fatalf("expected ErrDecompress for two-entry archive, got %v", err)
	}

	var empty bytes.Buffer
	if err := zip.NewWriter(&empty).Close(); err != nil {
		t.Fatalf("unexpected error closing empty archive: %v", err)
	}
	if _, err := Decompress(empty.Bytes(), models.CompressionZip); !errors.Is(err, ErrDecompress) {
		t.Fatalf("expected ErrDecompress for empty archive, got %v", err)
	}
}

func TestForUnknownScheme(t *testing.T) {
	if _, err := For(models.CompressionScheme(42)); err == nil {
		t.Fatalf("expected error for unknown compression scheme")
	}
}
