// Package typer fans the alignment and classification workflow out across
// many input assemblies and writes the combined typing report.
package typer

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/boasvdp/assembly-snptyper/align"
	"github.com/boasvdp/assembly-snptyper/pileup"
	"github.com/boasvdp/assembly-snptyper/variant"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"
)

type sampleResult struct {
	res pileup.Result
	err error
}

// RunParallel types every assembly against the shared marker set using a
// fixed pool of workers, then writes the report to out. Workers share only
// immutable inputs (bed path, reference path, markers), so no locking is
// needed. Rows appear in result-collection order, which with more than one
// worker is not the input order. Any task failure aborts the whole batch:
// the report is written only after every task has finished cleanly.
func RunParallel(bedPath, reference string, assemblies []string, markers []variant.Marker, preset string, workers, verbosity int, depthPlotPfx string, out io.Writer) error {
	if verbosity >= 1 {
		log.Printf("Running %d samples in parallel with %d workers", len(assemblies), workers)
	}
	tasks := make(chan string, len(assemblies))
	results := make(chan sampleResult, len(assemblies))
	wg := new(sync.WaitGroup)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go spawnWorker(tasks, results, bedPath, reference, markers, preset, verbosity, depthPlotPfx, wg)
	}
	for _, asm := range assemblies {
		tasks <- asm
	}
	close(tasks)
	go func() {
		wg.Wait()
		close(results)
	}()

	ans := make([]pileup.Result, 0, len(assemblies))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		ans = append(ans, r.res)
	}
	if firstErr != nil {
		return firstErr
	}
	WriteReport(out, ans)
	return nil
}

// spawnWorker runs full pipelines, one assembly at a time, until the task
// channel drains.
func spawnWorker(tasks <-chan string, results chan<- sampleResult, bedPath, reference string, markers []variant.Marker, preset string, verbosity int, depthPlotPfx string, wg *sync.WaitGroup) {
	defer wg.Done()
	for asm := range tasks {
		results <- typeOne(asm, bedPath, reference, markers, preset, verbosity, depthPlotPfx)
	}
}

func typeOne(asm, bedPath, reference string, markers []variant.Marker, preset string, verbosity int, depthPlotPfx string) sampleResult {
	sample := SampleName(asm)
	text, err := align.Pileup(bedPath, reference, asm, preset)
	if err != nil {
		return sampleResult{err: err}
	}
	if verbosity >= 2 {
		log.Printf("%s: %d bytes of mpileup output", sample, len(text))
	}
	records, err := pileup.Parse(text)
	if err != nil {
		return sampleResult{err: fmt.Errorf("%s: %w", sample, err)}
	}
	res := pileup.Classify(markers, records, sample)

	depths := pileup.DepthProfile(markers, records)
	if verbosity >= 1 {
		if len(depths) > 0 {
			log.Printf("Processed %s (mean marker depth %.2f)", sample, stat.Mean(depths, nil))
		} else {
			log.Printf("Processed %s", sample)
		}
	}
	if verbosity >= 2 && len(depths) > 0 {
		fmt.Fprintln(os.Stderr, asciigraph.Plot(depths, asciigraph.Height(5), asciigraph.Precision(0), asciigraph.Caption(sample)))
	}
	if depthPlotPfx != "" {
		if err = plotDepthProfile(depths, sample, depthPlotPfx); err != nil {
			return sampleResult{err: fmt.Errorf("%s: depth plot: %w", sample, err)}
		}
	}
	return sampleResult{res: res}
}

// SampleName derives the sample identifier from an assembly path by
// stripping the directory and the last extension.
func SampleName(asm string) string {
	base := filepath.Base(asm)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteReport writes the tab-separated typing table with its fixed header,
// one row per sample.
func WriteReport(out io.Writer, results []pileup.Result) {
	fmt.Fprintln(out, "sample\tmatching_variants\twt_variants\tvariants_in_scheme\tvariants_missing\tvariants_multiple_cov")
	for i := range results {
		fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%d\t%d\n", results[i].Sample, results[i].Matching, results[i].Wt, results[i].InScheme, results[i].Missing, results[i].MultipleCov)
	}
}
