package pileup

import (
	"errors"
	"testing"

	"github.com/boasvdp/assembly-snptyper/variant"
)

var testMarkers = []variant.Marker{
	{Chr: "chrom", Pos: 10, Ref: "A", Alt: "T"},
	{Chr: "chrom", Pos: 20, Ref: "C", Alt: "G"},
	{Chr: "chrom", Pos: 30, Ref: "G", Alt: "A"},
}

func TestParse(t *testing.T) {
	text := "chrom\t10\tA\t0\t*\t*\nchrom\t20\tC\t2\tG\t]]\nchrom\t30\tG\t1\t.\t]\n"
	records, err := Parse(text)
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	if len(records) != 3 {
		t.Fatal("expected 3 records, got", len(records))
	}
	if records[0] != (Record{Chr: "chrom", Pos: 10, Ref: "A", Depth: 0, Alt: "*", Qual: "*"}) {
		t.Error("zero depth record parsed wrong:", records[0])
	}
	if records[1].Depth != 2 || records[1].Alt != "G" {
		t.Error("record parsed wrong:", records[1])
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("chrom\t10\tA\n")
	if !errors.Is(err, ErrMalformed) {
		t.Error("expected malformed error for short line, got", err)
	}
	_, err = Parse("chrom\tten\tA\t0\t*\t*\n")
	if !errors.Is(err, ErrMalformed) {
		t.Error("expected malformed error for non-numeric POS, got", err)
	}
}

func TestClassify(t *testing.T) {
	// zero coverage at 10, duplicated match at 20, wild-type at 30
	text := "chrom\t10\tA\t0\t*\t*\nchrom\t20\tC\t2\tG\t]]\nchrom\t30\tG\t1\t.\t]\n"
	records, err := Parse(text)
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	res := Classify(testMarkers, records, "sampleA")
	if res.Sample != "sampleA" {
		t.Error("wrong sample name:", res.Sample)
	}
	if res.Missing != 1 || res.MultipleCov != 1 || res.InScheme != 3 || res.Matching != 1 || res.Wt != 1 {
		t.Error("classification mismatch:", res)
	}
}

func TestClassifyZeroDepthNeverMatches(t *testing.T) {
	records, err := Parse("chrom\t10\tA\t0\t*\t*\n")
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	res := Classify(testMarkers[:1], records, "s")
	if res.Missing != 1 || res.Matching != 0 || res.Wt != 0 {
		t.Error("zero depth marker must only count as missing:", res)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	records, err := Parse("chrom\t10\tA\t1\tt\t]\n")
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	res := Classify(testMarkers[:1], records, "s")
	if res.Matching != 1 {
		t.Error("lowercase observed ALT should still match:", res)
	}
}

func TestClassifyMatchingAndMultipleCov(t *testing.T) {
	records, err := Parse("chrom\t20\tC\t5\tG\t]]]]]\n")
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	res := Classify(testMarkers, records, "s")
	if res.Matching != 1 || res.MultipleCov != 1 {
		t.Error("depth >1 match should count as matching and multiple cov:", res)
	}
	if res.InScheme != 3 {
		t.Error("in scheme count must equal marker count:", res)
	}
}

func TestClassifyNoPileupRow(t *testing.T) {
	// should not happen with mpileup -aa, but an absent row must still
	// count toward the scheme total and nothing else
	records, err := Parse("chrom\t30\tG\t1\t,\t]\n")
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	res := Classify(testMarkers, records, "s")
	if res.InScheme != 3 || res.Wt != 1 || res.Missing != 0 || res.Matching != 0 || res.MultipleCov != 0 {
		t.Error("unmatched markers should only count toward scheme total:", res)
	}
}

func TestDepthProfile(t *testing.T) {
	records, err := Parse("chrom\t10\tA\t0\t*\t*\nchrom\t30\tG\t4\tA\t]]]]\n")
	if err != nil {
		t.Fatal("problem parsing mpileup output:", err)
	}
	depths := DepthProfile(testMarkers, records)
	if len(depths) != 3 || depths[0] != 0 || depths[1] != 0 || depths[2] != 4 {
		t.Error("depth profile mismatch:", depths)
	}
}
