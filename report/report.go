// Package report summarizes a hash read search for the user.
package report

import (
	"fmt"
	"github.com/dasnellings/hashReads/hashreads"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"io"
	"text/tabwriter"
	"time"
)

// Counts pairs each barcode name with the number of hash reads found for it.
type Counts struct {
	Names []string
	Hits  []float64
}

// BarcodeCounts returns the hits for every barcode in s, sorted by name.
func BarcodeCounts(s hashreads.Stats) Counts {
	all := make([]string, 0, len(s.Hits))
	for name := range s.Hits {
		all = append(all, name)
	}
	slices.Sort(all)

	ans := Counts{Names: all, Hits: make([]float64, len(all))}
	for i := range all {
		ans.Hits[i] = float64(s.Hits[all[i]])
	}
	return ans
}

// Summary writes a table of read pair outcomes and hits per barcode to w.
func Summary(w io.Writer, s hashreads.Stats, elapsed time.Duration) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Read pairs\t%d\n", s.Pairs)
	fmt.Fprintf(tw, "Hash reads written\t%d\t%s\n", s.Written, percent(s.Written, s.Pairs))
	fmt.Fprintf(tw, "No barcode match\t%d\t%s\n", s.NoMatch, percent(s.NoMatch, s.Pairs))
	fmt.Fprintf(tw, "Read 2 too short\t%d\t%s\n", s.ShortR2, percent(s.ShortR2, s.Pairs))
	fmt.Fprintf(tw, "Read 1 too short\t%d\t%s\n", s.ShortR1, percent(s.ShortR1, s.Pairs))
	fmt.Fprintf(tw, "Discordant read counts\t%t\n", s.Discordant)
	fmt.Fprintf(tw, "Time elapsed\t%.1fsec\n", elapsed.Seconds())

	c := BarcodeCounts(s)
	if len(c.Hits) > 0 {
		mean, sd := stat.MeanStdDev(c.Hits, nil)
		if len(c.Hits) < 2 {
			sd = 0
		}
		fmt.Fprintf(tw, "Hits per barcode\tmean %.1f\tsd %.1f\n", mean, sd)
		for i := range c.Names {
			fmt.Fprintf(tw, "  %s\t%.0f\n", c.Names[i], c.Hits[i])
		}
	}
	return tw.Flush()
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(n)/float64(total))
}
