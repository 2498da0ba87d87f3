package hashreads

import (
	"fmt"
	"github.com/dasnellings/hashReads/barcode"
	"github.com/dasnellings/hashReads/reads"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"os"
)

// CheckOutput reports whether filename can be created for writing. It leaves
// an empty file behind on success. "stdout" always passes.
func CheckOutput(filename string) error {
	if filename == "stdout" {
		return nil
	}
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	return file.Close()
}

// FindFiles opens the read 1, read 2 and hash table files, runs Find, and
// writes the hash reads to outfile. outfile may be "stdout" and is gzipped if
// it ends in ".gz".
func FindFiles(r1File, r2File, hashFile, outfile string, opt barcode.Options) (Stats, error) {
	if err := CheckOutput(outfile); err != nil {
		return Stats{}, err
	}
	table, err := barcode.ReadTable(hashFile, opt)
	if err != nil {
		return Stats{}, err
	}
	log.Printf("Loaded %d barcodes from %s.\n", table.Len(), hashFile)
	if table.Duplicates > 0 {
		log.Printf("WARNING: %d duplicate barcodes in %s. The last entry for each was kept.\n", table.Duplicates, hashFile)
	}
	if table.Skipped > 0 {
		log.Printf("WARNING: skipped %d malformed lines in %s.\n", table.Skipped, hashFile)
	}
	if table.OddLength > 0 {
		log.Printf("WARNING: %d barcodes in %s are not %d bases long and will never match.\n", table.OddLength, hashFile, barcode.Length)
	}

	r1, err := reads.Open(r1File)
	if err != nil {
		return Stats{}, err
	}
	defer r1.Close()
	r2, err := reads.Open(r2File)
	if err != nil {
		return Stats{}, err
	}
	defer r2.Close()

	out := fileio.EasyCreate(outfile)
	stats, err := Find(r1, r2, table, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", outfile, cerr)
	}
	if err != nil {
		return stats, err
	}

	if stats.Discordant {
		long, short := r1, r2
		if r2.Count() > r1.Count() {
			long, short = r2, r1
		}
		log.Printf("WARNING: %s ended after %d reads but %s has more. Stopped after %d pairs.\n", short.Name(), short.Count(), long.Name(), stats.Pairs)
	}
	return stats, nil
}
