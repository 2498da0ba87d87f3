package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/hashReads/barcode"
	"github.com/dasnellings/hashReads/hashreads"
	"github.com/dasnellings/hashReads/report"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"os"
	"time"
)

const version string = "1.0.0"

func usage(fs *flag.FlagSet) {
	fmt.Fprint(fs.Output(),
		"sciatacFindHashReads - Find hash reads in sci-ATAC-seq paired end reads.\n\n"+
			"Usage:\n"+
			"  sciatacFindHashReads [options] -1 r1.fq.gz -2 r2.fq.gz -h hash.txt -o hashReads.tsv\n\n"+
			"Read files may be plain text, gzip (.gz, .bgz), bzip2 (.bz2) or xz (.xz).\n\n"+
			"Options:\n")
	fs.PrintDefaults()
}

type config struct {
	r1, r2, hashTable, output string
	skipMalformed             bool
	statsFile                 string
	textPlot                  bool
	barPlot                   string
	showVersion               bool
}

// parseArgs returns the parsed config. A non-empty message means the
// arguments are unusable and the program should exit.
func parseArgs(args []string) (config, *flag.FlagSet, string) {
	var c config
	fs := flag.NewFlagSet("sciatacFindHashReads", flag.ExitOnError)
	fs.StringVar(&c.r1, "1", "", "Read 1 fastq file. May be compressed.")
	fs.StringVar(&c.r1, "fastq_r1", "", "Same as -1.")
	fs.StringVar(&c.r2, "2", "", "Read 2 fastq file. May be compressed.")
	fs.StringVar(&c.r2, "fastq_r2", "", "Same as -2.")
	fs.StringVar(&c.hashTable, "h", "", "Hash table file with lines of 'name barcode [aux]'.")
	fs.StringVar(&c.hashTable, "hash_table", "", "Same as -h.")
	fs.StringVar(&c.output, "o", "", "Output TSV file. May be 'stdout' or end in .gz.")
	fs.StringVar(&c.output, "tsv_out", "", "Same as -o.")
	fs.BoolVar(&c.skipMalformed, "skipMalformed", false, "Skip hash table lines with fewer than 2 columns instead of exiting.")
	fs.StringVar(&c.statsFile, "stats", "", "Write a run summary to this file. Use 'stdout' to print it.")
	fs.BoolVar(&c.textPlot, "plot", false, "Print a graph of hash reads per barcode to stderr.")
	fs.StringVar(&c.barPlot, "barplot", "", "Save a bar chart of hash reads per barcode (.png, .pdf or .svg).")
	fs.BoolVar(&c.showVersion, "V", false, "Show version.")
	fs.BoolVar(&c.showVersion, "version", false, "Same as -V.")
	fs.Usage = func() { usage(fs) }

	err := fs.Parse(args)
	exception.PanicOnErr(err)

	if c.showVersion {
		return c, fs, ""
	}
	if c.r1 == "" || c.r2 == "" || c.hashTable == "" || c.output == "" {
		return c, fs, "ERROR: missing command line argument(s). -1, -2, -h, and -o are all required."
	}
	return c, fs, ""
}

func sciatacFindHashReads(c config) {
	startTime := time.Now()
	if c.statsFile != "" {
		if err := hashreads.CheckOutput(c.statsFile); err != nil {
			log.Fatalf("ERROR: %s\n", err)
		}
	}
	stats, err := hashreads.FindFiles(c.r1, c.r2, c.hashTable, c.output, barcode.Options{SkipMalformed: c.skipMalformed})
	if barcode.IsParseError(err) {
		log.Fatalf("ERROR: %s\nRerun with -skipMalformed to ignore lines without a barcode.\n", err)
	}
	if err != nil {
		log.Fatalf("ERROR: %s\n", err)
	}
	elapsed := time.Since(startTime)
	log.Printf("Read pairs: %d\tHash reads: %d\tTime Elapsed: %.1fsec\n", stats.Pairs, stats.Written, elapsed.Seconds())

	if c.statsFile != "" {
		out := fileio.EasyCreate(c.statsFile)
		err = report.Summary(out, stats, elapsed)
		exception.PanicOnErr(err)
		err = out.Close()
		exception.PanicOnErr(err)
	}

	counts := report.BarcodeCounts(stats)
	if c.textPlot {
		fmt.Fprintln(os.Stderr, report.TextPlot(counts))
	}
	if c.barPlot != "" {
		err = report.BarPlot(counts, c.barPlot)
		exception.PanicOnErr(err)
	}
}

func main() {
	c, fs, msg := parseArgs(os.Args[1:])
	if c.showVersion {
		fmt.Println(version)
		return
	}
	if msg != "" {
		fs.Usage()
		errExit("\n" + msg)
	}

	sciatacFindHashReads(c)
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
