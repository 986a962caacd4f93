// core/blast/hit_test.go
package blast

import (
	"strings"
	"testing"
)

const row = "q1\ts1\t98.5\t120\t2\t0\t1\t120\t200\t81\t1e-50\t222.0\t150\t240"

func TestParseHit(t *testing.T) {
	h, err := ParseHit(strings.Fields(row))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if h.QueryID != "q1" || h.SubjectID != "s1" {
		t.Errorf("ids = %q/%q", h.QueryID, h.SubjectID)
	}
	if h.Identity != 98.5 || h.Length != 120 || h.QLen != 150 || h.SLen != 240 {
		t.Errorf("unexpected numbers: %+v", h)
	}
}

func TestParseHitFieldCount(t *testing.T) {
	if _, err := ParseHit(strings.Fields("a\tb\tc")); err == nil {
		t.Fatal("short row must fail")
	}
}

func TestCoverageRounding(t *testing.T) {
	// 100*1/3 = 33.333... -> 33.3; 100*2/3 = 66.666... -> 66.7
	h := Hit{Length: 1, QLen: 3, SLen: 3}
	if got := h.QueryCoverage(); got != 33.3 {
		t.Errorf("query coverage = %v, want 33.3", got)
	}
	h = Hit{Length: 2, QLen: 3, SLen: 3}
	if got := h.SubjectCoverage(); got != 66.7 {
		t.Errorf("subject coverage = %v, want 66.7", got)
	}
	// exact half rounds away from zero: 100*1/8 = 12.5 -> 12.5 (one decimal
	// already); 100*3/800 = 0.375 -> 0.4
	h = Hit{Length: 3, QLen: 800, SLen: 800}
	if got := h.QueryCoverage(); got != 0.4 {
		t.Errorf("query coverage = %v, want 0.4", got)
	}
}

func TestStrandFromSubjectOrder(t *testing.T) {
	fwd := Hit{SStart: 10, SEnd: 90}
	rev := Hit{SStart: 90, SEnd: 10}
	if !fwd.Forward() || rev.Forward() {
		t.Fatal("strand must follow subject start/end order")
	}
	s, e := rev.SubjectSpan()
	if s != 10 || e != 90 {
		t.Fatalf("normalized span = (%d,%d), want (10,90)", s, e)
	}
}

func TestReadHitsSkipsCommentsAndBlanks(t *testing.T) {
	in := "# header\n\n" + row + "\n"
	var n int
	err := ReadHits(strings.NewReader(in), func(Hit) error { n++; return nil })
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d hits, want 1", n)
	}
}

func TestReadHitsFatalOnBadRow(t *testing.T) {
	in := row + "\nnot\ta\tvalid\trow\n"
	err := ReadHits(strings.NewReader(in), func(Hit) error { return nil })
	if err == nil {
		t.Fatal("malformed row must abort the read")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}
