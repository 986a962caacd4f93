// core/synonym/table.go
package synonym

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry maps an external (BLAST subject) identifier to a feature id and an
// optional prefix id.
type Entry struct {
	External string
	Feature  string
	Prefix   string
}

// Table provides bidirectional identifier lookup. Both maps are built once
// at load time and never mutated afterwards.
type Table struct {
	forward map[string]Entry  // external id -> entry
	reverse map[string]string // feature id (plain and prefixed) -> external id
}

// Load reads a 2-3 column synonym TSV from path.
func Load(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	t, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses synonym rows: external id, feature id, optional prefix id.
// A duplicate external id is a contract violation and fails the load.
func Read(r io.Reader) (*Table, error) {
	t := &Table{
		forward: make(map[string]Entry),
		reverse: make(map[string]string),
	}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("line %d: expected 2-3 fields, got %d", ln, len(f))
		}
		e := Entry{External: f[0], Feature: f[1]}
		if len(f) == 3 {
			e.Prefix = f[2]
		}
		if _, dup := t.forward[e.External]; dup {
			return nil, fmt.Errorf("line %d: duplicate external id %q", ln, e.External)
		}
		t.forward[e.External] = e
		t.reverse[e.Feature] = e.External
		if e.Prefix != "" {
			t.reverse[e.Prefix+"_"+e.Feature] = e.External
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Resolve maps a raw subject id to the identifier used for annotation
// matching. A nil table is valid and resolves every id to itself. With
// usePrefix the prefix id is joined in front of the feature id by an
// underscore; entries lacking a prefix fall back to the feature id alone.
// Unknown ids pass through unchanged in every mode.
func (t *Table) Resolve(subjectID string, usePrefix bool) string {
	if t == nil {
		return subjectID
	}
	e, ok := t.forward[subjectID]
	if !ok {
		return subjectID
	}
	if usePrefix && e.Prefix != "" {
		return e.Prefix + "_" + e.Feature
	}
	return e.Feature
}

// External returns the external id recorded for a feature id (plain or
// prefixed spelling).
func (t *Table) External(featureID string) (string, bool) {
	if t == nil {
		return "", false
	}
	ext, ok := t.reverse[featureID]
	return ext, ok
}

// Len reports the number of loaded entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.forward)
}
