// core/blast/hit.go
package blast

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Hit is one row of BLAST tabular output (outfmt 6) with the two extra
// length columns (qlen, slen) appended, 14 fields total.
type Hit struct {
	QueryID   string
	SubjectID string
	Identity  float64
	Length    int
	Mismatch  int
	GapOpen   int
	QStart    int
	QEnd      int
	SStart    int
	SEnd      int
	EValue    float64
	BitScore  float64
	QLen      int
	SLen      int
}

const numFields = 14

// ParseHit parses one whitespace-split tabular row.
func ParseHit(fields []string) (Hit, error) {
	if len(fields) != numFields {
		return Hit{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}
	var h Hit
	var err error
	h.QueryID = fields[0]
	h.SubjectID = fields[1]
	if h.Identity, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Hit{}, fmt.Errorf("bad identity %q: %w", fields[2], err)
	}
	ints := []struct {
		dst *int
		col int
	}{
		{&h.Length, 3}, {&h.Mismatch, 4}, {&h.GapOpen, 5},
		{&h.QStart, 6}, {&h.QEnd, 7}, {&h.SStart, 8}, {&h.SEnd, 9},
		{&h.QLen, 12}, {&h.SLen, 13},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(fields[f.col]); err != nil {
			return Hit{}, fmt.Errorf("bad integer %q in column %d: %w", fields[f.col], f.col+1, err)
		}
	}
	if h.EValue, err = strconv.ParseFloat(fields[10], 64); err != nil {
		return Hit{}, fmt.Errorf("bad e-value %q: %w", fields[10], err)
	}
	if h.BitScore, err = strconv.ParseFloat(fields[11], 64); err != nil {
		return Hit{}, fmt.Errorf("bad bit score %q: %w", fields[11], err)
	}
	return h, nil
}

// ReadHits streams hits from r, calling fn for each parsed row.
// Blank lines and '#' comments are skipped; any malformed row is fatal.
func ReadHits(r io.Reader, fn func(Hit) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		h, err := ParseHit(strings.Fields(line))
		if err != nil {
			return fmt.Errorf("line %d: %w", ln, err)
		}
		if err := fn(h); err != nil {
			return err
		}
	}
	return sc.Err()
}

// QueryCoverage is 100*Length/QLen rounded to one decimal place.
func (h Hit) QueryCoverage() float64 { return round1(100 * float64(h.Length) / float64(h.QLen)) }

// SubjectCoverage is 100*Length/SLen rounded to one decimal place.
func (h Hit) SubjectCoverage() float64 { return round1(100 * float64(h.Length) / float64(h.SLen)) }

// Forward reports the subject strand: start/end order encodes orientation.
func (h Hit) Forward() bool { return h.SEnd > h.SStart }

// SubjectSpan returns the subject interval normalized to (min,max).
func (h Hit) SubjectSpan() (int, int) {
	if h.SStart <= h.SEnd {
		return h.SStart, h.SEnd
	}
	return h.SEnd, h.SStart
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
