// Package pileup parses samtools mpileup output and tallies marker calls
// for one sample.
package pileup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a line of mpileup output does not have the
// expected CHROM POS REF DEPTH ALT QUAL layout.
var ErrMalformed = errors.New("malformed mpileup line")

// Record is one line of samtools mpileup output.
type Record struct {
	Chr   string
	Pos   int // 1-based
	Ref   string
	Depth int
	Alt   string
	Qual  string
}

// Parse reads the full text output of samtools mpileup. Because mpileup
// runs with -aa, every bed position yields a line even at zero depth.
func Parse(text string) ([]Record, error) {
	var ans []Record
	var err error
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		words := strings.Split(line, "\t")
		if len(words) < 6 {
			return nil, fmt.Errorf("%w: expected 6 fields: %q", ErrMalformed, line)
		}
		var r Record
		r.Chr = words[0]
		r.Pos, err = strconv.Atoi(words[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad POS: %q", ErrMalformed, line)
		}
		r.Ref = words[2]
		r.Depth, err = strconv.Atoi(words[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad DEPTH: %q", ErrMalformed, line)
		}
		r.Alt = words[4]
		r.Qual = words[5]
		ans = append(ans, r)
	}
	return ans, nil
}
