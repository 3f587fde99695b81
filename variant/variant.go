// Package variant loads typing markers from a reference VCF and converts
// them to the bed intervals used to restrict pileup generation.
package variant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
)

// ErrIndel is returned when the reference VCF contains a REF or ALT field
// longer than one character. The typing scheme only supports substitutions.
var ErrIndel = errors.New("REF and ALT must be single characters: reference vcf must not contain indels")

// Marker is a single typing position with its expected alleles.
type Marker struct {
	Chr string
	Pos int // 1-based, as in the VCF
	Ref string
	Alt string
}

// ReadMarkers reads all records from a reference VCF in file order.
// Every REF and ALT must be exactly one character, otherwise the whole
// file is rejected before any alignment work starts.
func ReadMarkers(vcfFile string) ([]Marker, error) {
	records, _ := vcf.GoReadToChan(vcfFile)
	var ans []Marker
	for v := range records {
		ans = append(ans, Marker{Chr: v.Chr, Pos: v.Pos, Ref: v.Ref, Alt: strings.Join(v.Alt, ",")})
	}
	for i := range ans {
		if len(ans[i].Ref) != 1 {
			return nil, fmt.Errorf("%s:%d REF %q: %w", ans[i].Chr, ans[i].Pos, ans[i].Ref, ErrIndel)
		}
		if len(ans[i].Alt) != 1 {
			return nil, fmt.Errorf("%s:%d ALT %q: %w", ans[i].Chr, ans[i].Pos, ans[i].Alt, ErrIndel)
		}
	}
	return ans, nil
}

// WriteBed writes one 0-based half-open interval per marker, preserving
// marker order. The file is read by samtools mpileup --positions.
func WriteBed(markers []Marker, bedPath string) {
	out := fileio.EasyCreate(bedPath)
	for i := range markers {
		bed.WriteBed(out, bed.Bed{Chrom: markers[i].Chr, ChromStart: markers[i].Pos - 1, ChromEnd: markers[i].Pos, FieldsInitialized: 3})
	}
	err := out.Close()
	exception.PanicOnErr(err)
}
