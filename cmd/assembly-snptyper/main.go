// assembly-snptyper types microbial genome assemblies against a reference
// marker VCF by aligning each assembly with minimap2 and classifying
// samtools mpileup calls at the marker positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/boasvdp/assembly-snptyper/align"
	"github.com/boasvdp/assembly-snptyper/typer"
	"github.com/boasvdp/assembly-snptyper/variant"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

const version string = "0.2.0"

func usage() {
	fmt.Print(
		"assembly-snptyper - type assemblies based on a reference vcf\n" +
			"Requires minimap2 and samtools in PATH.\n\n" +
			"Usage:\n" +
			"assembly-snptyper [options] -vcf ref.vcf -reference ref.fasta -list_input assemblies.txt > report.tsv\n\n" +
			"Options:\n")
	flag.PrintDefaults()
}

func main() {
	vcfFile := flag.String("vcf", "", "VCF file with variants that determine the type. REF and ALT must be single bases.")
	reference := flag.String("reference", "", "Reference genome fasta. Must be the reference the vcf coordinates refer to.")
	listInput := flag.String("list_input", "", "File listing input assemblies, one path per line.")
	bedPath := flag.String("bed", "", "Write the marker bed file to this path instead of a temporary file. The file is kept after the run either way.")
	procs := flag.Int("p", 1, "Number of parallel workers. Each worker runs its own minimap2/samtools pipeline.")
	depthPlotPfx := flag.String("depthPlotPfx", "", "Output per-sample marker depth plots. Files will be named 'depthPlotPfx'_'sample'.png.")
	verbose := flag.Int("verbose", 0, "Level of verbosity in log. 0 = warning, 1 = info, 2 = debug.")
	printVersion := flag.Bool("version", false, "Print version and exit.")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	flag.Parse()
	flag.Usage = usage

	if *printVersion {
		fmt.Printf("assembly-snptyper %s\n", version)
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *vcfFile == "" || *reference == "" || *listInput == "" {
		usage()
		log.Fatal("ERROR: must specify -vcf, -reference, and -list_input.")
	}
	if *procs < 1 {
		log.Fatal("ERROR: -p must be >= 1.")
	}

	snptyper(*vcfFile, *reference, *listInput, *bedPath, *depthPlotPfx, *procs, *verbose)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

func snptyper(vcfFile, reference, listInput, bedPath, depthPlotPfx string, procs, verbose int) {
	if verbose >= 1 {
		log.Printf("Using minimap2 preset: %s", align.DefaultPreset)
		log.Println("Checking external dependencies")
	}
	if err := align.CheckTools(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	// missing inputs should fail here, not from inside a worker pipeline
	for _, file := range []string{vcfFile, reference, listInput} {
		if _, err := os.Stat(file); err != nil {
			log.Fatalf("ERROR: cannot read input: %v", err)
		}
	}

	markers, err := variant.ReadMarkers(vcfFile)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	assemblies := readList(listInput)
	if verbose >= 1 {
		log.Printf("Number of input assemblies: %d", len(assemblies))
	}

	if bedPath == "" {
		tmp, err := os.CreateTemp("", "snptyper_*.bed")
		if err != nil {
			log.Fatalf("ERROR: creating bed file: %v", err)
		}
		bedPath = tmp.Name()
		err = tmp.Close()
		exception.PanicOnErr(err)
	}
	variant.WriteBed(markers, bedPath)
	if verbose >= 1 {
		log.Printf("Created marker bed file: %s", bedPath)
	}

	err = typer.RunParallel(bedPath, reference, assemblies, markers, align.DefaultPreset, procs, verbose, depthPlotPfx, os.Stdout)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

// readList reads assembly paths one per line, stripping whitespace and
// skipping blank lines.
func readList(listInput string) []string {
	var ans []string
	input := fileio.EasyOpen(listInput)
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		line = strings.TrimSpace(line)
		if line != "" {
			ans = append(ans, line)
		}
	}
	err := input.Close()
	exception.PanicOnErr(err)
	return ans
}
