// Package reads provides a record reader for fastq and fasta files that
// reuses a single Record for every read and decodes compressed input.
package reads

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const bufferSize int = 1024 * 1024

// Record is one entry of a read file. The byte slices are overwritten by the
// next call to Reader.Read.
type Record struct {
	Name []byte
	Desc []byte
	Seq  []byte
	Qual []byte // empty for fasta records
}

// Reset empties the record while keeping its allocations.
func (r *Record) Reset() {
	r.Name = r.Name[:0]
	r.Desc = r.Desc[:0]
	r.Seq = r.Seq[:0]
	r.Qual = r.Qual[:0]
}

// FormatError reports a record that could not be parsed.
type FormatError struct {
	File   string
	Record int // 1-based
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed record %d in %s: %s", e.Record, e.File, e.Msg)
}

// Reader reads fastq or fasta records one at a time. Sequence and quality
// lines may be wrapped. Read overwrites the caller's Record in place so a scan
// holds exactly one record per stream no matter how long it runs.
type Reader struct {
	name string
	src  io.Closer
	br   *bufio.Reader
	line []byte
	num  int
	err  error
}

// Open returns a Reader for filename, decompressing based on the file suffix.
func Open(filename string) (*Reader, error) {
	src, err := OpenSource(filename)
	if err != nil {
		return nil, err
	}
	r := NewReader(src, filename)
	r.src = src
	return r, nil
}

// NewReader returns a Reader over already decoded data. name is used in error
// messages.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{name: name, br: bufio.NewReaderSize(r, bufferSize)}
}

// Name returns the file name given when the Reader was created.
func (r *Reader) Name() string {
	return r.name
}

// Count returns the number of records read so far.
func (r *Reader) Count() int {
	return r.num
}

// Close closes the underlying file if the Reader opened it.
func (r *Reader) Close() error {
	if r.src == nil {
		return nil
	}
	return r.src.Close()
}

// Read fills rec with the next record. It returns false with a nil error at
// the end of the stream. Once Read returns false it keeps returning false.
func (r *Reader) Read(rec *Record) (bool, error) {
	rec.Reset()
	if r.err != nil {
		if r.err == io.EOF {
			return false, nil
		}
		return false, r.err
	}
	ok, err := r.read(rec)
	if err != nil {
		r.err = err
		rec.Reset()
		return false, err
	}
	if !ok {
		r.err = io.EOF
		return false, nil
	}
	return true, nil
}

func (r *Reader) read(rec *Record) (bool, error) {
	var err error
	// skip blank lines between records
	for {
		if err = r.readLine(); err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if len(r.line) > 0 {
			break
		}
	}

	r.num++
	switch r.line[0] {
	case '@':
		r.parseHeader(rec)
		return true, r.readFastq(rec)
	case '>':
		r.parseHeader(rec)
		return true, r.readFasta(rec)
	default:
		return false, r.formatErr("expected '@' or '>' at start of header, found %q", r.line)
	}
}

func (r *Reader) parseHeader(rec *Record) {
	header := r.line[1:]
	if i := bytes.IndexAny(header, " \t"); i >= 0 {
		rec.Name = append(rec.Name, header[:i]...)
		rec.Desc = append(rec.Desc, bytes.TrimLeft(header[i:], " \t")...)
	} else {
		rec.Name = append(rec.Name, header...)
	}
}

func (r *Reader) readFastq(rec *Record) error {
	var err error
	for {
		if err = r.readLine(); err == io.EOF {
			return r.formatErr("truncated record %q: no '+' line", rec.Name)
		}
		if err != nil {
			return err
		}
		if len(r.line) > 0 && r.line[0] == '+' {
			break
		}
		rec.Seq = append(rec.Seq, r.line...)
	}
	if err = r.checkSeq(rec); err != nil {
		return err
	}

	// quality lines may begin with '@' so stop on length, not content
	for len(rec.Qual) < len(rec.Seq) {
		if err = r.readLine(); err == io.EOF {
			return r.formatErr("truncated record %q: quality shorter than sequence", rec.Name)
		}
		if err != nil {
			return err
		}
		if len(r.line) == 0 {
			return r.formatErr("truncated record %q: quality shorter than sequence", rec.Name)
		}
		rec.Qual = append(rec.Qual, r.line...)
	}
	if len(rec.Qual) != len(rec.Seq) {
		return r.formatErr("record %q has %d bases and %d quality values", rec.Name, len(rec.Seq), len(rec.Qual))
	}
	return nil
}

func (r *Reader) readFasta(rec *Record) error {
	var next []byte
	var err error
	for {
		next, err = r.br.Peek(1)
		if err == io.EOF || (err == nil && next[0] == '>') {
			break
		}
		if err != nil {
			return err
		}
		if err = r.readLine(); err != nil && err != io.EOF {
			return err
		}
		rec.Seq = append(rec.Seq, r.line...)
	}
	return r.checkSeq(rec)
}

// checkSeq rejects bytes that cannot be sequence text.
func (r *Reader) checkSeq(rec *Record) error {
	for i, b := range rec.Seq {
		switch {
		case 'A' <= b && b <= 'Z', 'a' <= b && b <= 'z', b == '-', b == '.', b == '*':
		default:
			return r.formatErr("record %q has invalid sequence byte %q at position %d", rec.Name, b, i)
		}
	}
	return nil
}

// readLine sets r.line to the next line without its line ending. r.line is
// only valid until the next call.
func (r *Reader) readLine() error {
	r.line = r.line[:0]
	for {
		chunk, err := r.br.ReadSlice('\n')
		r.line = append(r.line, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			if len(r.line) == 0 {
				return io.EOF
			}
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", r.name, err)
		}
		break
	}
	r.line = bytes.TrimSuffix(r.line, []byte{'\n'})
	r.line = bytes.TrimSuffix(r.line, []byte{'\r'})
	return nil
}

func (r *Reader) formatErr(format string, args ...any) error {
	return &FormatError{File: r.name, Record: r.num, Msg: fmt.Sprintf(format, args...)}
}
