// Package align runs the external minimap2 + samtools pipeline that turns
// one assembly into a pileup over the marker positions.
package align

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultPreset is the minimap2 preset for mapping an assembly to a closely
// related reference (divergence <5%).
const DefaultPreset = "asm5"

// ErrMissingDependency is returned when minimap2 or samtools cannot be
// found in PATH.
var ErrMissingDependency = errors.New("required external tool not found in PATH")

// CheckTools verifies that minimap2 and samtools are in PATH. Called once
// at startup, before any pipeline starts.
func CheckTools() error {
	for _, tool := range []string{"minimap2", "samtools"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingDependency, tool)
		}
	}
	return nil
}

// Pileup aligns one assembly to the reference and returns the text output
// of samtools mpileup restricted to the bed positions. The four stages are
// connected by pipes with no intermediate files:
//
//	minimap2 -ax PRESET REF ASM | samtools view -b - | samtools sort -l 0 - | samtools mpileup -aa --positions BED -f REF -
//
// The terminal stage's stdout is drained to EOF before any stage's exit
// status is checked, otherwise a stage blocked on a full pipe buffer would
// never finish. minimap2 and mpileup write progress chatter to stderr on
// every run; that output is dropped, so a malformed alignment surfaces as
// an empty or truncated pileup rather than a diagnostic.
func Pileup(bedPath, reference, assembly, preset string) (string, error) {
	minimap := exec.Command("minimap2", "-ax", preset, reference, assembly)
	view := exec.Command("samtools", "view", "-b", "-")
	sort := exec.Command("samtools", "sort", "-l", "0", "-")
	mpileup := exec.Command("samtools", "mpileup", "-aa", "--positions", bedPath, "-f", reference, "-")
	view.Stderr = os.Stderr
	sort.Stderr = os.Stderr

	stages := []*exec.Cmd{minimap, view, sort, mpileup}
	names := []string{"minimap2", "samtools view", "samtools sort", "samtools mpileup"}

	var err error
	for i := 1; i < len(stages); i++ {
		stages[i].Stdin, err = stages[i-1].StdoutPipe()
		if err != nil {
			return "", fmt.Errorf("%s: connecting pipe: %w", names[i-1], err)
		}
	}
	out, err := mpileup.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("samtools mpileup: connecting pipe: %w", err)
	}

	for i := range stages {
		if err = stages[i].Start(); err != nil {
			return "", fmt.Errorf("%s: starting for %s: %w", names[i], assembly, err)
		}
	}

	text, err := io.ReadAll(out)
	if err != nil {
		return "", fmt.Errorf("reading mpileup output for %s: %w", assembly, err)
	}
	for i := range stages {
		if err = stages[i].Wait(); err != nil {
			return "", fmt.Errorf("%s: failed for %s: %w", names[i], assembly, err)
		}
	}
	return string(text), nil
}
