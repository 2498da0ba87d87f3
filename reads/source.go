package reads

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"fmt"
	"github.com/klauspost/pgzip"
	"github.com/xi2/xz"
	"io"
	"os"
	"strings"
)

// Compression is the encoding of an input file, chosen from its suffix.
type Compression byte

const (
	None Compression = iota
	Gzip
	Bzip2
	Xz
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	default:
		return "none"
	}
}

// DetectCompression returns the Compression implied by the suffix of filename.
// bgzip files are multi-member gzip files and are read as gzip.
func DetectCompression(filename string) Compression {
	switch {
	case strings.HasSuffix(filename, ".gz"), strings.HasSuffix(filename, ".bgz"):
		return Gzip
	case strings.HasSuffix(filename, ".bz2"):
		return Bzip2
	case strings.HasSuffix(filename, ".xz"):
		return Xz
	default:
		return None
	}
}

// OpenSource opens filename and returns a stream of its decoded bytes. The
// name "stdin" reads uncompressed data from standard input.
func OpenSource(filename string) (io.ReadCloser, error) {
	if filename == "stdin" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	src, err := NewSource(file, DetectCompression(filename))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	return src, nil
}

// NewSource wraps an already open file with the decoder for c. Closing the
// returned source closes the file. A zero byte file is an empty stream for
// every compression.
func NewSource(file io.ReadCloser, c Compression) (io.ReadCloser, error) {
	if c == None {
		return file, nil
	}
	br := bufio.NewReader(file)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return file, nil
	}

	switch c {
	case Gzip:
		gz, err := pgzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		// concatenated members must all be read, not just the first
		gz.Multistream(true)
		return &decoder{Reader: gz, inner: gz, file: file}, nil
	case Bzip2:
		return &decoder{Reader: bzip2.NewReader(br), file: file}, nil
	case Xz:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		xr.Multistream(true)
		return &decoder{Reader: xr, file: file}, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

// decoder is a decompressing source over an open file.
type decoder struct {
	io.Reader
	inner io.Closer
	file  io.Closer
}

func (d *decoder) Close() error {
	var err error
	if d.inner != nil {
		err = d.inner.Close()
	}
	if ferr := d.file.Close(); err == nil {
		err = ferr
	}
	return err
}
