package barcode

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/dasnellings/hashReads/reads"
	"strings"
)

// Length is the number of read 2 bases compared against the hash table.
const Length int = 10

// DefaultAux is used when a hash table line has no third column.
const DefaultAux string = "0"

// Entry is the value stored for each hash barcode.
type Entry struct {
	Name string
	Aux  string
}

// Table maps an exact barcode sequence to its Entry. A Table is read-only once
// ReadTable returns.
type Table struct {
	entries map[string]Entry

	Duplicates int // keys seen more than once, last line wins
	Skipped    int // malformed lines skipped with Options.SkipMalformed
	OddLength  int // keys that are not Length bases long and can never match
}

// Options controls how ReadTable treats malformed lines.
type Options struct {
	SkipMalformed bool
}

// ParseError reports a hash table line that does not have at least two columns.
type ParseError struct {
	File string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed hash table %s: line %d needs at least 2 columns, found: %q", e.File, e.Line, e.Text)
}

// NewTable builds a Table from entries keyed on barcode sequence.
func NewTable(entries map[string]Entry) Table {
	t := Table{entries: make(map[string]Entry, len(entries))}
	for k, v := range entries {
		t.add(k, v)
	}
	return t
}

// ReadTable reads a whitespace delimited hash table with lines of the form
// "name barcode [aux]". Blank lines and lines starting with '#' are ignored.
// The table may be compressed with any encoding the reads package accepts.
func ReadTable(filename string, opt Options) (Table, error) {
	file, err := reads.OpenSource(filename)
	if err != nil {
		return Table{}, fmt.Errorf("opening hash table: %w", err)
	}

	t := Table{entries: make(map[string]Entry)}
	s := bufio.NewScanner(file)
	var line string
	var words []string
	var lineNum int
	for s.Scan() {
		lineNum++
		line = s.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		words = strings.Fields(line)
		switch len(words) {
		case 0:
			continue
		case 1:
			if opt.SkipMalformed {
				t.Skipped++
				continue
			}
			file.Close()
			return Table{}, &ParseError{File: filename, Line: lineNum, Text: line}
		case 2:
			t.add(words[1], Entry{Name: words[0], Aux: DefaultAux})
		default:
			t.add(words[1], Entry{Name: words[0], Aux: words[2]})
		}
	}
	if err = s.Err(); err != nil {
		file.Close()
		return Table{}, fmt.Errorf("reading hash table %s: %w", filename, err)
	}

	if err = file.Close(); err != nil {
		return Table{}, fmt.Errorf("closing hash table: %w", err)
	}
	return t, nil
}

func (t *Table) add(key string, e Entry) {
	if _, found := t.entries[key]; found {
		t.Duplicates++
	} else if len(key) != Length {
		t.OddLength++
	}
	t.entries[key] = e
}

// Lookup returns the Entry for an exact barcode match. No case folding or
// ambiguity code handling is done.
func (t Table) Lookup(seq []byte) (Entry, bool) {
	e, found := t.entries[string(seq)]
	return e, found
}

// Len returns the number of distinct barcodes in the table.
func (t Table) Len() int {
	return len(t.entries)
}

// Names returns the barcode name of every entry, one per key.
func (t Table) Names() []string {
	ans := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		ans = append(ans, e.Name)
	}
	return ans
}

// IsParseError reports whether err came from a malformed hash table line.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
