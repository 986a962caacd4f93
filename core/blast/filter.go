// core/blast/filter.go
package blast

import (
	"promex-core/synonym"
)

// Config holds the selection thresholds. All three are inclusive lower
// bounds: a hit exactly at a threshold passes.
type Config struct {
	MinQueryCov   float64
	MinSubjectCov float64
	MinIdentity   float64
	UsePrefix     bool
}

// Selected is a hit that survived filtering, keyed in the table by its
// resolved identifier.
type Selected struct {
	ResolvedID string
	SubjectID  string // raw subject id before synonym substitution
	QueryID    string
	Forward    bool
	Start, End int // normalized subject span
	Identity   float64
	QueryCov   float64
	SubjectCov float64
}

// Stats are the running aggregates reported after filtering.
type Stats struct {
	Rows           int
	Passed         int
	UniqueSubjects int
	MeanQueryCov   float64
	MeanSubjectCov float64
	MeanIdentity   float64
}

// Filter accumulates hits that pass the thresholds into a table keyed by
// resolved id. A later hit with the same resolved id replaces the earlier
// one wholesale; the tie-break is last-wins, never a merge.
type Filter struct {
	cfg      Config
	syn      *synonym.Table
	sel      map[string]Selected
	subjects map[string]struct{}
	rows     int
	passed   int
	sumQC    float64
	sumSC    float64
	sumID    float64
}

// NewFilter builds a filter; syn may be nil when no synonym table is loaded.
func NewFilter(cfg Config, syn *synonym.Table) *Filter {
	return &Filter{
		cfg:      cfg,
		syn:      syn,
		sel:      make(map[string]Selected),
		subjects: make(map[string]struct{}),
	}
}

// Add evaluates one hit and returns whether it was selected.
func (f *Filter) Add(h Hit) bool {
	f.rows++
	f.subjects[h.SubjectID] = struct{}{}
	qc, sc := h.QueryCoverage(), h.SubjectCoverage()
	f.sumQC += qc
	f.sumSC += sc
	f.sumID += h.Identity
	if qc < f.cfg.MinQueryCov || sc < f.cfg.MinSubjectCov || h.Identity < f.cfg.MinIdentity {
		return false
	}
	f.passed++
	start, end := h.SubjectSpan()
	id := f.syn.Resolve(h.SubjectID, f.cfg.UsePrefix)
	f.sel[id] = Selected{
		ResolvedID: id,
		SubjectID:  h.SubjectID,
		QueryID:    h.QueryID,
		Forward:    h.Forward(),
		Start:      start,
		End:        end,
		Identity:   h.Identity,
		QueryCov:   qc,
		SubjectCov: sc,
	}
	return true
}

// Selected returns the accumulated table. The map is shared, not copied;
// callers treat it as read-only after filtering completes.
func (f *Filter) Selected() map[string]Selected { return f.sel }

// Stats summarizes everything seen so far.
func (f *Filter) Stats() Stats {
	s := Stats{
		Rows:           f.rows,
		Passed:         f.passed,
		UniqueSubjects: len(f.subjects),
	}
	if f.rows > 0 {
		n := float64(f.rows)
		s.MeanQueryCov = round1(f.sumQC / n)
		s.MeanSubjectCov = round1(f.sumSC / n)
		s.MeanIdentity = round1(f.sumID / n)
	}
	return s
}
