// internal/pipeline/pipeline.go
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"promex-core/blast"
	"promex-core/dna"
	"promex-core/fasta"
	"promex-core/gff"
	"promex-core/region"
)

// FeatureHit is a selected BLAST hit resolved to a genomic interval via a
// taxon's annotation.
type FeatureHit struct {
	ResolvedID string
	SubjectID  string // raw BLAST subject id, carried into output descriptions
	Taxon      string
	Contig     string
	Start      int
	End        int
	Forward    bool
}

// TaxonFeatures accumulates resolved matches for one taxon. A re-match for
// an already-seen resolved id replaces the record but keeps its original
// position in the scan order.
type TaxonFeatures struct {
	Taxon   string
	records map[string]*FeatureHit
	order   []string
}

// Len is the number of distinct resolved ids matched for this taxon.
func (tf *TaxonFeatures) Len() int { return len(tf.order) }

// ByContig groups the matched features per contig, preserving scan order
// within each contig. Built once after the annotation scan completes.
func (tf *TaxonFeatures) ByContig() map[string][]*FeatureHit {
	m := map[string][]*FeatureHit{}
	for _, id := range tf.order {
		r := tf.records[id]
		m[r.Contig] = append(m[r.Contig], r)
	}
	return m
}

func (tf *TaxonFeatures) add(r *FeatureHit) {
	if _, seen := tf.records[r.ResolvedID]; !seen {
		tf.order = append(tf.order, r.ResolvedID)
	}
	tf.records[r.ResolvedID] = r
}

// SelectHits streams the BLAST tabular file at path through the filter.
// Any malformed row aborts the run.
func SelectHits(path string, f *blast.Filter) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()
	if err := blast.ReadHits(fh, func(h blast.Hit) error {
		f.Add(h)
		return nil
	}); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ScanAnnotations reads one taxon's annotation file and resolves every
// feature whose candidate spellings match a selected hit. The first
// candidate to match wins per line.
func ScanAnnotations(
	path, taxon string,
	selected map[string]blast.Selected,
	usePrefix, altSuffix bool,
	log zerolog.Logger,
) (*TaxonFeatures, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	tf := &TaxonFeatures{Taxon: taxon, records: map[string]*FeatureHit{}}
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		feat, ok, err := gff.ParseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		if !ok {
			continue
		}
		for _, cand := range feat.Candidates(taxon, usePrefix, altSuffix) {
			sel, hit := selected[cand]
			if !hit {
				continue
			}
			tf.add(&FeatureHit{
				ResolvedID: cand,
				SubjectID:  sel.SubjectID,
				Taxon:      taxon,
				Contig:     feat.SeqID,
				Start:      feat.Start,
				End:        feat.End,
				Forward:    feat.Forward(),
			})
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().
		Str("taxon", taxon).
		Int("features", tf.Len()).
		Msg("annotation scan complete")
	return tf, nil
}

// Promoter is one extracted flanking sequence ready for output.
type Promoter struct {
	ID          string
	Description string
	Seq         []byte
}

// ExtractConfig parameterizes window projection.
type ExtractConfig struct {
	Mode   region.Mode
	Length int
}

// ExtractTaxon streams the taxon's assembly and emits a promoter for every
// matched feature whose projected window survives clamping. Reverse-strand
// extractions are reverse-complemented. Output order is contig order in the
// assembly, then annotation scan order within each contig.
func ExtractTaxon(
	ctx context.Context,
	tf *TaxonFeatures,
	assemblyPath string,
	cfg ExtractConfig,
	log zerolog.Logger,
	emit func(Promoter) error,
) error {
	byContig := tf.ByContig()
	return fasta.StreamPath(ctx, assemblyPath, func(rec fasta.Record) error {
		for _, ft := range byContig[rec.ID] {
			w, ok := region.Project(ft.Forward, cfg.Mode, ft.Start, ft.End, cfg.Length, len(rec.Seq))
			if !ok {
				log.Warn().
					Str("taxon", ft.Taxon).
					Str("feature", ft.ResolvedID).
					Int("start", w.Start).
					Int("end", w.End).
					Msg("projected window too small, skipped")
				continue
			}
			seq := append([]byte(nil), rec.Seq[w.Start-1:w.End]...)
			strand := byte('+')
			if !ft.Forward {
				seq = dna.RevComp(seq)
				strand = '-'
			}
			p := Promoter{
				ID:          ft.ResolvedID + "_" + cfg.Mode.Letter() + strconv.Itoa(cfg.Length),
				Description: fmt.Sprintf("%s:%d-%d(%c) AltID=%s", ft.Contig, w.Start, w.End, strand, ft.SubjectID),
				Seq:         seq,
			}
			if err := emit(p); err != nil {
				return err
			}
		}
		return nil
	})
}
