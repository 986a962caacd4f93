// internal/writers/fasta.go
package writers

import (
	"fmt"
	"io"

	"promex/internal/pipeline"
)

// wrapWidth is the sequence line width of emitted FASTA records.
const wrapWidth = 60

// OutputPath derives the promoter output file name from the configured
// basename.
func OutputPath(outbase string) string {
	return outbase + "_promotors.fasta"
}

// PromoterWriter appends promoter records to a single output stream and
// counts what it wrote.
type PromoterWriter struct {
	w io.Writer
	n int
}

func NewPromoterWriter(w io.Writer) *PromoterWriter { return &PromoterWriter{w: w} }

// Count reports the number of records written so far.
func (pw *PromoterWriter) Count() int { return pw.n }

// Write emits one record: a header with id and description, then the
// sequence wrapped at 60 columns.
func (pw *PromoterWriter) Write(p pipeline.Promoter) error {
	hdr := ">" + p.ID
	if p.Description != "" {
		hdr += " " + p.Description
	}
	if _, err := fmt.Fprintln(pw.w, hdr); err != nil {
		return err
	}
	for off := 0; off < len(p.Seq); off += wrapWidth {
		end := off + wrapWidth
		if end > len(p.Seq) {
			end = len(p.Seq)
		}
		if _, err := fmt.Fprintf(pw.w, "%s\n", p.Seq[off:end]); err != nil {
			return err
		}
	}
	pw.n++
	return nil
}
