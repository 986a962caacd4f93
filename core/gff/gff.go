// core/gff/gff.go
package gff

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature is one parsed 9-column annotation line. Coordinates are 1-based
// inclusive with Start <= End on input.
type Feature struct {
	SeqID      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     byte
	Phase      string
	Attributes map[string]string
}

// Forward reports gene orientation; anything but '-' counts as forward.
func (f Feature) Forward() bool { return f.Strand != '-' }

// ParseLine parses one annotation line. ok is false for blank lines and
// '#' comments. A malformed or absent attribute column is tolerated (empty
// attribute set); short lines and bad coordinates are errors.
func ParseLine(line string) (Feature, bool, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return Feature{}, false, nil
	}
	cols := strings.Split(line, "\t")
	if len(cols) < 8 {
		return Feature{}, false, fmt.Errorf("expected at least 8 columns, got %d", len(cols))
	}
	var f Feature
	f.SeqID = cols[0]
	f.Source = cols[1]
	f.Type = cols[2]
	var err error
	if f.Start, err = strconv.Atoi(cols[3]); err != nil {
		return Feature{}, false, fmt.Errorf("bad start %q: %w", cols[3], err)
	}
	if f.End, err = strconv.Atoi(cols[4]); err != nil {
		return Feature{}, false, fmt.Errorf("bad end %q: %w", cols[4], err)
	}
	f.Score = cols[5]
	if cols[6] != "" {
		f.Strand = cols[6][0]
	}
	f.Phase = cols[7]
	if len(cols) > 8 {
		f.Attributes = ParseAttributes(cols[8])
	} else {
		f.Attributes = map[string]string{}
	}
	return f, true, nil
}

// ParseAttributes splits a ';'-separated list of key=value pairs. Pairs
// without '=' are ignored rather than rejected; one genome's irregular
// trailing column must not abort a multi-genome batch.
func ParseAttributes(s string) map[string]string {
	attrs := map[string]string{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.IndexByte(part, '=')
		if eq <= 0 {
			continue
		}
		attrs[part[:eq]] = part[eq+1:]
	}
	return attrs
}

// Candidates lists the alternate identifier spellings a feature can be
// matched under, in priority order: Name, ID, then Name+".p" when the
// alternate-suffix convention is enabled. Lines without an ID attribute
// have no candidates. With usePrefix every spelling is prefixed by
// "<taxon>_".
func (f Feature) Candidates(taxon string, usePrefix, altSuffix bool) []string {
	id, ok := f.Attributes["ID"]
	if !ok {
		return nil
	}
	name := f.Attributes["Name"]
	var cands []string
	if name != "" {
		cands = append(cands, name)
	}
	cands = append(cands, id)
	if altSuffix && name != "" {
		cands = append(cands, name+".p")
	}
	if usePrefix {
		for i, c := range cands {
			cands[i] = taxon + "_" + c
		}
	}
	return cands
}
