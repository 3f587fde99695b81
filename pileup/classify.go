package pileup

import (
	"strings"

	"github.com/boasvdp/assembly-snptyper/variant"
)

// Result holds the per-sample marker tally written to the final report.
type Result struct {
	Sample      string
	Matching    int // observed ALT equals the marker ALT, case-insensitive
	Wt          int // depth exactly 1 and observed ALT is . or ,
	InScheme    int // total markers in the reference vcf
	Missing     int // observed ALT is * (zero coverage or deletion)
	MultipleCov int // depth >1, possible duplication; may still match
}

// Classify left-joins markers against pileup records by position. Every
// marker contributes to InScheme; the other counts are independent
// predicates on the observed record, so a marker can be counted as both
// matching and multiple-coverage. A marker with no pileup row at all only
// counts toward InScheme. If a position somehow appears more than once in
// the pileup, the first record wins.
func Classify(markers []variant.Marker, records []Record, sample string) Result {
	byPos := make(map[int]Record, len(records))
	for i := range records {
		if _, ok := byPos[records[i].Pos]; !ok {
			byPos[records[i].Pos] = records[i]
		}
	}

	ans := Result{Sample: sample, InScheme: len(markers)}
	for i := range markers {
		obs, ok := byPos[markers[i].Pos]
		if !ok {
			continue
		}
		if obs.Alt == "*" {
			ans.Missing++
		}
		if obs.Depth > 1 {
			ans.MultipleCov++
		}
		if strings.EqualFold(obs.Alt, markers[i].Alt) {
			ans.Matching++
		}
		if obs.Depth == 1 && (obs.Alt == "." || obs.Alt == ",") {
			ans.Wt++
		}
	}
	return ans
}

// DepthProfile returns the observed depth at each marker in marker order,
// 0 where the pileup has no row. Used for log diagnostics and depth plots.
func DepthProfile(markers []variant.Marker, records []Record) []float64 {
	byPos := make(map[int]int, len(records))
	for i := range records {
		if _, ok := byPos[records[i].Pos]; !ok {
			byPos[records[i].Pos] = records[i].Depth
		}
	}
	ans := make([]float64, len(markers))
	for i := range markers {
		ans[i] = float64(byPos[markers[i].Pos])
	}
	return ans
}
