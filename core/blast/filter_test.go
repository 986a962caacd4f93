// core/blast/filter_test.go
package blast

import (
	"strings"
	"testing"

	"promex-core/synonym"
)

func mkHit(subject string, length, qlen, slen int, ident float64, sstart, send int) Hit {
	return Hit{
		QueryID: "q", SubjectID: subject,
		Length: length, QLen: qlen, SLen: slen,
		Identity: ident, SStart: sstart, SEnd: send,
	}
}

func TestFilterThresholdsInclusive(t *testing.T) {
	f := NewFilter(Config{MinQueryCov: 10, MinSubjectCov: 10, MinIdentity: 10}, nil)
	// coverage exactly 10.0 on both sides, identity exactly 10.0: must pass
	if !f.Add(mkHit("s1", 10, 100, 100, 10.0, 1, 10)) {
		t.Fatal("hit at exact thresholds must be selected")
	}
	// one tick under on identity: must fail
	if f.Add(mkHit("s2", 10, 100, 100, 9.9, 1, 10)) {
		t.Fatal("hit below identity threshold must be rejected")
	}
	if len(f.Selected()) != 1 {
		t.Fatalf("selected = %d, want 1", len(f.Selected()))
	}
}

func TestFilterLastWinsOnDuplicateResolvedID(t *testing.T) {
	f := NewFilter(Config{MinQueryCov: 10, MinSubjectCov: 10, MinIdentity: 10}, nil)
	f.Add(mkHit("s1", 50, 100, 100, 95, 100, 200))
	f.Add(mkHit("s1", 60, 100, 100, 88, 300, 250)) // reverse, later row
	sel := f.Selected()
	if len(sel) != 1 {
		t.Fatalf("selected = %d, want exactly 1", len(sel))
	}
	got := sel["s1"]
	if got.Start != 250 || got.End != 300 || got.Forward {
		t.Fatalf("second hit must replace the first wholesale: %+v", got)
	}
	if got.Identity != 88 {
		t.Fatalf("identity = %v, want the later row's 88", got.Identity)
	}
}

func TestFilterSynonymResolution(t *testing.T) {
	tab, err := synonym.Read(strings.NewReader("Gene1v2\tGene1\tTx1\n"))
	if err != nil {
		t.Fatalf("synonyms: %v", err)
	}
	f := NewFilter(Config{MinQueryCov: 10, MinSubjectCov: 10, MinIdentity: 10, UsePrefix: true}, tab)
	f.Add(mkHit("Gene1v2", 90, 100, 100, 99, 1, 90))
	sel := f.Selected()
	got, ok := sel["Tx1_Gene1"]
	if !ok {
		t.Fatalf("expected key Tx1_Gene1, have %v", sel)
	}
	if got.SubjectID != "Gene1v2" {
		t.Fatalf("raw subject id must be preserved, got %q", got.SubjectID)
	}
}

func TestFilterStats(t *testing.T) {
	f := NewFilter(Config{MinQueryCov: 50, MinSubjectCov: 50, MinIdentity: 50}, nil)
	f.Add(mkHit("a", 100, 100, 100, 100, 1, 100))
	f.Add(mkHit("b", 10, 100, 100, 10, 1, 10))
	f.Add(mkHit("a", 100, 100, 100, 90, 1, 100))
	s := f.Stats()
	if s.Rows != 3 || s.Passed != 2 || s.UniqueSubjects != 2 {
		t.Fatalf("stats = %+v", s)
	}
	if s.MeanQueryCov != 70.0 {
		t.Fatalf("mean query coverage = %v, want 70.0", s.MeanQueryCov)
	}
}
