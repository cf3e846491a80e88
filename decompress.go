package microbemap

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression identifies how an input stream is packed.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionBZip2
)

var magicNumbers = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// DetectCompression looks at the leading bytes of a stream. Anything that
// matches no known signature, including a stream too short to hold one, is
// treated as uncompressed.
func DetectCompression(head []byte) Compression {
Outer:
	for c, sig := range magicNumbers {
		if len(head) < len(sig) {
			continue
		}
		for i := range sig {
			if head[i] != sig[i] {
				continue Outer
			}
		}
		return c
	}

	return CompressionNone
}

// MaybeDecompress returns a reader over the decompressed contents of r. Only
// the first member of a zip archive is read.
func MaybeDecompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek returns what it could along with io.EOF on short input
	head, _ := br.Peek(6)

	switch DetectCompression(head) {
	case CompressionGzip:
		return gzip.NewReader(br)
	case CompressionZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return zr, nil
	case CompressionBZip2:
		return bzip2.NewReader(br), nil
	case CompressionXZ:
		return xz.NewReader(br, 0)
	}

	return br, nil
}
