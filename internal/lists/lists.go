// internal/lists/lists.go
package lists

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry is one row of a 2-column list file: a taxon id and the path of that
// taxon's annotation or assembly file. Slice order is list-file order and
// fixes the processing order of the whole run.
type Entry struct {
	Taxon string
	Path  string
}

// Load reads a taxon/path list. Exactly two columns per row; a duplicate
// taxon id is a contract violation.
func Load(path string) ([]Entry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var out []Entry
	seen := map[string]bool{}
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d expected 2 fields, got %d", path, ln, len(f))
		}
		if seen[f[0]] {
			return nil, fmt.Errorf("%s:%d duplicate taxon id %q", path, ln, f[0])
		}
		seen[f[0]] = true
		out = append(out, Entry{Taxon: f[0], Path: f[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty list", path)
	}
	return out, nil
}

// ByTaxon indexes entries by taxon id.
func ByTaxon(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Taxon] = e.Path
	}
	return m
}

// CheckSameTaxa verifies the annotation and sequence lists cover the
// identical taxon set.
func CheckSameTaxa(ann, seq []Entry) error {
	var missing []string
	a, s := ByTaxon(ann), ByTaxon(seq)
	for t := range a {
		if _, ok := s[t]; !ok {
			missing = append(missing, t+" (no sequence file)")
		}
	}
	for t := range s {
		if _, ok := a[t]; !ok {
			missing = append(missing, t+" (no annotation file)")
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("annotation/sequence taxon sets differ: %s", strings.Join(missing, ", "))
	}
	return nil
}
