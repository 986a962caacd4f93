// internal/lists/lists_test.go
package lists

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "list.tsv")
	require.NoError(t, os.WriteFile(fn, []byte(body), 0o644))
	return fn
}

func TestLoadPreservesOrder(t *testing.T) {
	fn := writeList(t, "# comment\nTx2\tb.gff\nTx1\ta.gff\n")
	got, err := Load(fn)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tx2", got[0].Taxon)
	assert.Equal(t, "a.gff", got[1].Path)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	fn := writeList(t, "Tx1\ta.gff\nTx1\tb.gff\n")
	_, err := Load(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate taxon id")
}

func TestLoadRejectsBadColumnCount(t *testing.T) {
	fn := writeList(t, "Tx1\ta.gff\textra\n")
	_, err := Load(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 fields")
}

func TestLoadRejectsEmptyList(t *testing.T) {
	fn := writeList(t, "# nothing here\n")
	_, err := Load(fn)
	assert.Error(t, err)
}

func TestCheckSameTaxa(t *testing.T) {
	ann := []Entry{{Taxon: "Tx1"}, {Taxon: "Tx2"}}
	seq := []Entry{{Taxon: "Tx2"}, {Taxon: "Tx1"}}
	assert.NoError(t, CheckSameTaxa(ann, seq))

	seq = []Entry{{Taxon: "Tx1"}, {Taxon: "Tx3"}}
	err := CheckSameTaxa(ann, seq)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tx2")
	assert.Contains(t, err.Error(), "Tx3")
}
