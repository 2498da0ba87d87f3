package hashreads

import (
	"bufio"
	"bytes"
	"fmt"
	"github.com/dasnellings/hashReads/barcode"
	"github.com/dasnellings/hashReads/reads"
	"io"
	"log"
)

// Tag is the first column of every output line.
const Tag string = "sciPlexATAC"

// R1PrefixLength is the number of read 1 bases written to the output.
const R1PrefixLength int = 8

const outBufferSize int = 1024 * 1024

// progressInterval sets how often Find logs the number of pairs scanned. Zero
// disables progress logging.
var progressInterval int = 1000000

// RecordReader reads the next record into rec, returning false at the end of
// the stream.
type RecordReader interface {
	Read(rec *reads.Record) (bool, error)
}

// Stats tallies the outcome of every read pair seen by Find.
type Stats struct {
	Pairs      int            // read pairs scanned
	Written    int            // output lines written
	ShortR2    int            // read 2 shorter than barcode.Length
	ShortR1    int            // barcode hit but read 1 shorter than R1PrefixLength
	NoMatch    int            // read 2 prefix not in the hash table
	Discordant bool           // one stream ended before the other
	Hits       map[string]int // output lines per barcode name, zero for barcodes never seen
}

// WellId returns the read name up to, but not including, the last ':'. Names
// without a ':' are returned unchanged.
func WellId(name []byte) []byte {
	if i := bytes.LastIndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return name
}

// Find reads r1 and r2 in lock-step until either is exhausted and writes one
// line to out for each pair whose first barcode.Length read 2 bases exactly
// match a barcode in table. Pairs with too few bases are skipped. Output is
// buffered and flushed before Find returns.
func Find(r1, r2 RecordReader, table barcode.Table, out io.Writer) (Stats, error) {
	var err error
	var ok1, ok2, found bool
	var rec1, rec2 reads.Record
	var entry barcode.Entry
	s := Stats{Hits: make(map[string]int)}
	for _, name := range table.Names() {
		s.Hits[name] = 0
	}
	bw := bufio.NewWriterSize(out, outBufferSize)

	for {
		if ok1, err = r1.Read(&rec1); err != nil {
			return s, fmt.Errorf("reading read 1: %w", err)
		}
		if ok2, err = r2.Read(&rec2); err != nil {
			return s, fmt.Errorf("reading read 2: %w", err)
		}
		if !ok1 || !ok2 {
			s.Discordant = ok1 != ok2
			break
		}
		s.Pairs++
		if progressInterval > 0 && s.Pairs%progressInterval == 0 {
			log.Printf("Read pairs processed: %d\tHash reads found: %d\n", s.Pairs, s.Written)
		}

		if len(rec2.Seq) < barcode.Length {
			s.ShortR2++
			continue
		}
		entry, found = table.Lookup(rec2.Seq[:barcode.Length])
		if !found {
			s.NoMatch++
			continue
		}
		if len(rec1.Seq) < R1PrefixLength {
			s.ShortR1++
			continue
		}
		if err = writeRecord(bw, &rec1, entry); err != nil {
			return s, fmt.Errorf("writing output: %w", err)
		}
		s.Written++
		s.Hits[entry.Name]++
	}

	if err = bw.Flush(); err != nil {
		return s, fmt.Errorf("writing output: %w", err)
	}
	return s, nil
}

func writeRecord(w *bufio.Writer, r1 *reads.Record, entry barcode.Entry) error {
	w.WriteString(Tag)
	w.WriteByte('\t')
	w.Write(WellId(r1.Name))
	w.WriteByte('\t')
	w.Write(r1.Seq[:R1PrefixLength])
	w.WriteByte('\t')
	w.WriteString(entry.Name)
	w.WriteByte('\t')
	w.WriteString(entry.Aux)
	return w.WriteByte('\n')
}
