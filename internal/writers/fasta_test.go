// internal/writers/fasta_test.go
package writers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promex/internal/pipeline"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "promoter_seqs_promotors.fasta", OutputPath("promoter_seqs"))
}

func TestPromoterWriterHeaderAndWrap(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPromoterWriter(&buf)
	p := pipeline.Promoter{
		ID:          "Tx1_Gene1_D2000",
		Description: "Chr1:899-999(+) AltID=Gene1v2",
		Seq:         bytes.Repeat([]byte("ACGT"), 31), // 124 bases, wraps twice
	}
	require.NoError(t, pw.Write(p))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ">Tx1_Gene1_D2000 Chr1:899-999(+) AltID=Gene1v2", lines[0])
	assert.Len(t, lines[1], 60)
	assert.Len(t, lines[2], 60)
	assert.Len(t, lines[3], 4)
	assert.Equal(t, 1, pw.Count())
}

func TestPromoterWriterCounts(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPromoterWriter(&buf)
	for i := 0; i < 3; i++ {
		require.NoError(t, pw.Write(pipeline.Promoter{ID: "x", Seq: []byte("ACGT")}))
	}
	assert.Equal(t, 3, pw.Count())
}
