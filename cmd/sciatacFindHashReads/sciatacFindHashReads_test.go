package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseArgs(t *testing.T) {
	c, _, msg := parseArgs([]string{"-1", "r1.fq.gz", "-2", "r2.fq.gz", "-h", "hash.txt", "-o", "out.tsv"})
	if msg != "" || c.r1 != "r1.fq.gz" || c.r2 != "r2.fq.gz" || c.hashTable != "hash.txt" || c.output != "out.tsv" {
		t.Errorf("short flags parsed incorrectly: %+v %s", c, msg)
	}

	c, _, msg = parseArgs([]string{"--fastq_r1", "a", "--fastq_r2", "b", "--hash_table", "c", "--tsv_out", "d", "-skipMalformed"})
	if msg != "" || c.r1 != "a" || c.r2 != "b" || c.hashTable != "c" || c.output != "d" || !c.skipMalformed {
		t.Errorf("long flags parsed incorrectly: %+v %s", c, msg)
	}
}

func TestParseArgsMissing(t *testing.T) {
	tests := [][]string{
		{},
		{"-1", "r1.fq", "-2", "r2.fq", "-h", "hash.txt"},
		{"-1", "r1.fq", "-h", "hash.txt", "-o", "out.tsv"},
	}
	for _, args := range tests {
		if _, _, msg := parseArgs(args); msg == "" {
			t.Errorf("expected error for args %v", args)
		}
	}
}

func TestParseArgsVersion(t *testing.T) {
	c, _, msg := parseArgs([]string{"-V"})
	if !c.showVersion || msg != "" {
		t.Errorf("version flag not honored: %+v %s", c, msg)
	}
}

func TestSciatacFindHashReads(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"hash.txt": "BC01\tAAAAACCCCC\n",
		"r1.fq":    "@run:lane:tile:x:y:1\nGGGGTTTTCCCC\n+\nIIIIIIIIIIII\n",
		"r2.fq":    "@run:lane:tile:x:y:2\nAAAAACCCCCTTTT\n+\nIIIIIIIIIIIIII\n",
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c := config{
		r1:        filepath.Join(dir, "r1.fq"),
		r2:        filepath.Join(dir, "r2.fq"),
		hashTable: filepath.Join(dir, "hash.txt"),
		output:    filepath.Join(dir, "out.tsv"),
		statsFile: filepath.Join(dir, "stats.txt"),
	}
	sciatacFindHashReads(c)

	out, err := os.ReadFile(c.output)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "sciPlexATAC\trun:lane:tile:x:y\tGGGGTTTT\tBC01\t0\n" {
		t.Errorf("unexpected output %q", out)
	}
	if _, err = os.Stat(c.statsFile); err != nil {
		t.Errorf("stats file not written: %v", err)
	}
}
