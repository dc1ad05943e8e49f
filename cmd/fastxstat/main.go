// Command fastxstat reports per-file length and GC-content summary
// statistics for a FASTA or FASTQ file, in the spirit of Lab_Buddy's
// fasta_indexer/fasta_overview tooling, but built on gofasta's streaming
// parser instead of a line scanner.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"lukechampine.com/blake3"

	"github.com/nnnkkk7/gofasta"
)

type record struct {
	header string
	length int
	gc     float64 // percent
	hash   [32]byte
}

func main() {
	Run(os.Args[1:])
}

// Run implements the fastxstat command. Separated from main so it can be
// driven by tests the way Lab_Buddy's tool packages separate Run from main.
func Run(args []string) {
	fs := flag.NewFlagSet("fastxstat", flag.ExitOnError)
	inFile := fs.String("in", "", "FASTA/FASTQ input file (required)")
	histPath := fs.String("hist", "", "write a sequence-length histogram PNG to this path")
	dedup := fs.Bool("dedup", false, "report duplicate sequences by content hash")
	if err := fs.Parse(args); err != nil {
		log.Fatal("error parsing flags: ", err)
	}

	if *inFile == "" {
		fs.Usage()
		log.Fatal("error: -in is required")
	}

	records, err := collect(*inFile)
	if err != nil {
		log.Fatal("fastxstat: ", err)
	}

	printSummary(*inFile, records)

	if *dedup {
		printDuplicates(records)
	}

	if *histPath != "" {
		if err := writeLengthHistogram(records, *histPath); err != nil {
			log.Fatal("fastxstat: writing histogram: ", err)
		}
		fmt.Printf("wrote length histogram to %s\n", *histPath)
	}
}

// collect parses in wholesale, computing one record per header with its
// length, GC percentage, and content hash.
func collect(in string) ([]record, error) {
	p, err := gofasta.FromFile(in, gofasta.DefaultConfig)
	if err != nil {
		return nil, err
	}

	var out []record
	for {
		ev, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if ev.Kind != gofasta.EventRecord {
			continue
		}

		dna := p.DNAString()
		rec := record{
			header: string(p.Header()),
			length: len(dna),
			gc:     gcPercent(dna),
			hash:   blake3.Sum256(dna),
		}
		out = append(out, rec)
		p.ClearRecord()
	}
	return out, nil
}

func gcPercent(dna []byte) float64 {
	if len(dna) == 0 {
		return 0
	}
	var gc int
	for _, b := range dna {
		switch b {
		case 'C', 'c', 'G', 'g':
			gc++
		}
	}
	return float64(gc) / float64(len(dna)) * 100
}

func printSummary(path string, records []record) {
	fmt.Printf("fastxstat: %s\n", path)
	fmt.Printf("  sequences: %d\n", len(records))
	if len(records) == 0 {
		return
	}

	lengths := make([]float64, len(records))
	gcValues := make([]float64, len(records))
	for i, r := range records {
		lengths[i] = float64(r.length)
		gcValues[i] = r.gc
	}

	meanLen := stat.Mean(lengths, nil)
	stddevLen := stat.StdDev(lengths, nil)
	meanGC := stat.Mean(gcValues, nil)
	stddevGC := stat.StdDev(gcValues, nil)

	sortedLengths := append([]float64(nil), lengths...)
	sort.Float64s(sortedLengths)
	p50 := stat.Quantile(0.5, stat.Empirical, sortedLengths, nil)
	p90 := stat.Quantile(0.9, stat.Empirical, sortedLengths, nil)

	fmt.Printf("  length: mean=%.1f stddev=%.1f p50=%.0f p90=%.0f min=%.0f max=%.0f\n",
		meanLen, stddevLen, p50, p90, sortedLengths[0], sortedLengths[len(sortedLengths)-1])
	fmt.Printf("  GC content: mean=%.2f%% stddev=%.2f%%\n", meanGC, stddevGC)
}

func printDuplicates(records []record) {
	seen := make(map[[32]byte][]string)
	for _, r := range records {
		seen[r.hash] = append(seen[r.hash], r.header)
	}

	var dupGroups int
	for _, headers := range seen {
		if len(headers) < 2 {
			continue
		}
		dupGroups++
		fmt.Printf("  duplicate (%d copies): %v\n", len(headers), headers)
	}
	if dupGroups == 0 {
		fmt.Println("  no duplicate sequences found")
	}
}

// writeLengthHistogram renders a sequence-length histogram PNG, following
// Lab_Buddy's fastqc_mimic line-plot helpers but as a bar histogram via
// plotter.NewHist, since fastxstat reports one static file rather than an
// interactive report.
func writeLengthHistogram(records []record, path string) error {
	values := make(plotter.Values, len(records))
	for i, r := range records {
		values[i] = float64(r.length)
	}

	p := plot.New()
	p.Title.Text = "Sequence Length Distribution"
	p.X.Label.Text = "Length (bp)"
	p.Y.Label.Text = "Count"

	bins := 50
	if len(values) < bins {
		bins = len(values)
	}
	if bins < 1 {
		bins = 1
	}
	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	hist.FillColor = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	p.Add(hist)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
