// core/region/region.go
package region

import "fmt"

// Mode selects which flank of a feature to extract. Naming is
// strand-relative: Downstream pairs the forward-strand upstream window with
// the reverse-strand downstream window so that the extracted flank always
// sits on the promoter side of the gene.
type Mode int

const (
	Downstream Mode = iota
	Upstream
	Both
)

// ParseMode accepts the single-letter flag values D, U and B.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "D":
		return Downstream, nil
	case "U":
		return Upstream, nil
	case "B":
		return Both, nil
	}
	return 0, fmt.Errorf("invalid region mode %q (want D, U or B)", s)
}

// Letter is the single-character spelling used in output record ids.
func (m Mode) Letter() string {
	switch m {
	case Upstream:
		return "U"
	case Both:
		return "B"
	}
	return "D"
}

func (m Mode) String() string {
	switch m {
	case Upstream:
		return "upstream"
	case Both:
		return "both"
	}
	return "downstream"
}

// minWindow is the hard floor on clamped window length (End-Start); windows
// at or below it are rejected as non-viable promoters.
const minWindow = 4

// Window is a projected, clamped genomic interval (1-based inclusive).
type Window struct {
	Start int
	End   int
}

// Length is End-Start, the quantity the viability floor applies to.
func (w Window) Length() int { return w.End - w.Start }

// Project computes the flanking window for a feature interval. It is a pure
// function of its arguments. Feature coordinates are 1-based inclusive with
// start <= end. The returned bool is false when the clamped window is too
// short to keep.
func Project(forward bool, m Mode, start, end, length, seqLen int) (Window, bool) {
	var s, e int
	switch {
	case m == Both:
		s, e = start-length-1, end+1+length
	case (forward && m == Downstream) || (!forward && m == Upstream):
		s, e = start-length-1, start-1
	default: // forward Upstream, reverse Downstream
		s, e = end+1, end+1+length
	}

	if s <= 0 {
		s = 1
	}
	if e >= seqLen {
		e = seqLen
	} else if e < 1 {
		e = 1
	}

	w := Window{Start: s, End: e}
	return w, w.Length() > minWindow
}
