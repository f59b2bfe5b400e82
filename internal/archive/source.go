// Package archive opens treebank sources that may be shipped compressed.
// Plain XML, gzip and xz are recognised by their magic bytes, so a
// renamed file is still read correctly.
package archive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a source file is encoded.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// Detect classifies the leading bytes of a file.
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Source is a decompressing reader over a file.
type Source struct {
	io.Reader
	Compression Compression

	file         *os.File
	decompressor io.Closer
}

// Open opens path and wraps it in the decompressor its content calls for.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	br := bufio.NewReader(f)
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		f.Close()
		return nil, errors.NewIO("read", path, err)
	}

	src := &Source{file: f, Compression: Detect(header)}
	switch src.Compression {
	case CompressionXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, &errors.ParseError{Format: "xz", Path: path, Message: err.Error(), Err: err}
		}
		src.Reader = xzr
	case CompressionGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, &errors.ParseError{Format: "gzip", Path: path, Message: err.Error(), Err: err}
		}
		src.Reader = gzr
		src.decompressor = gzr
	default:
		src.Reader = br
	}
	return src, nil
}

// Close closes the decompressor, if any, and the underlying file.
func (s *Source) Close() error {
	var first error
	if s.decompressor != nil {
		if err := s.decompressor.Close(); err != nil {
			first = err
		}
		s.decompressor = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && first == nil {
			first = err
		}
		s.file = nil
	}
	return first
}

// ReadFile returns the decompressed content of path.
func ReadFile(path string) ([]byte, Compression, error) {
	src, err := Open(path)
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", &errors.ParseError{Format: string(src.Compression), Path: path, Message: err.Error(), Err: err}
	}
	return data, src.Compression, nil
}
